package othello

import (
	"fmt"
	"math/bits"
)

// Position holds the discs of the side to move and of its opponent as bitboards.
// Bit index is row*8 + col.
type Position struct {
	player   uint64
	opponent uint64
}

// NewPosition creates a new position from a player and opponent bitboard
func NewPosition(player, opponent uint64) (Position, error) {
	if player&opponent != 0 {
		return Position{}, fmt.Errorf("invalid position: player and opponent discs cannot overlap")
	}

	return Position{
		player:   player,
		opponent: opponent,
	}, nil
}

// NewPositionMust creates a new position from a player and opponent bitboard
// and panics if the position is invalid
func NewPositionMust(player, opponent uint64) Position {
	p, err := NewPosition(player, opponent)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPositionStart creates a new position with the starting position, black to move.
func NewPositionStart() Position {
	return NewPositionMust(0x0000000810000000, 0x0000001008000000)
}

// NewPositionEmpty creates a new position with an empty board
func NewPositionEmpty() Position {
	return NewPositionMust(0, 0)
}

// Player returns the player bitboard
func (p Position) Player() uint64 {
	return p.player
}

// Opponent returns the opponent bitboard
func (p Position) Opponent() uint64 {
	return p.opponent
}

// CountDiscs returns the number of discs on the board
func (p Position) CountDiscs() int {
	return bits.OnesCount64(p.player | p.opponent)
}

// HasMoves returns whether the position has any valid moves
func (p Position) HasMoves() bool {
	return p.Moves() != 0
}

// swapped returns the position as seen by the opponent.
func (p Position) swapped() Position {
	return Position{player: p.opponent, opponent: p.player}
}

// Moves returns a bitset with all valid moves for the player
// This code is adapted from Edax
func (p Position) Moves() uint64 {
	mask := p.opponent & 0x7E7E7E7E7E7E7E7E

	flipL := mask & (p.player << 1)
	flipL |= mask & (flipL << 1)
	maskL := mask & (mask << 1)
	flipL |= maskL & (flipL << (2 * 1))
	flipL |= maskL & (flipL << (2 * 1))
	flipR := mask & (p.player >> 1)
	flipR |= mask & (flipR >> 1)
	maskR := mask & (mask >> 1)
	flipR |= maskR & (flipR >> (2 * 1))
	flipR |= maskR & (flipR >> (2 * 1))
	movesSet := (flipL << 1) | (flipR >> 1)

	flipL = mask & (p.player << 7)
	flipL |= mask & (flipL << 7)
	maskL = mask & (mask << 7)
	flipL |= maskL & (flipL << (2 * 7))
	flipL |= maskL & (flipL << (2 * 7))
	flipR = mask & (p.player >> 7)
	flipR |= mask & (flipR >> 7)
	maskR = mask & (mask >> 7)
	flipR |= maskR & (flipR >> (2 * 7))
	flipR |= maskR & (flipR >> (2 * 7))
	movesSet |= (flipL << 7) | (flipR >> 7)

	flipL = mask & (p.player << 9)
	flipL |= mask & (flipL << 9)
	maskL = mask & (mask << 9)
	flipL |= maskL & (flipL << (2 * 9))
	flipL |= maskL & (flipL << (2 * 9))
	flipR = mask & (p.player >> 9)
	flipR |= mask & (flipR >> 9)
	maskR = mask & (mask >> 9)
	flipR |= maskR & (flipR >> (2 * 9))
	flipR |= maskR & (flipR >> (2 * 9))
	movesSet |= (flipL << 9) | (flipR >> 9)

	flipL = p.opponent & (p.player << 8)
	flipL |= p.opponent & (flipL << 8)
	maskL = p.opponent & (p.opponent << 8)
	flipL |= maskL & (flipL << (2 * 8))
	flipL |= maskL & (flipL << (2 * 8))
	flipR = p.opponent & (p.player >> 8)
	flipR |= p.opponent & (flipR >> 8)
	maskR = p.opponent & (p.opponent >> 8)
	flipR |= maskR & (flipR >> (2 * 8))
	flipR |= maskR & (flipR >> (2 * 8))
	movesSet |= (flipL << 8) | (flipR >> 8)

	movesSet &^= p.player | p.opponent
	return movesSet
}

// directions lists the row and column deltas of all eight directions.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// flipped returns the opponent discs that would be flipped by playing on index.
// In every direction only the run of opponent discs closed by a player disc flips.
func (p Position) flipped(index int) uint64 {
	if index < 0 || index >= 64 {
		return 0
	}

	if (p.player|p.opponent)&(uint64(1)<<index) != 0 {
		return 0
	}

	flipped := uint64(0)
	row, col := index/8, index%8

	for _, dir := range directions {
		run := uint64(0)

		for dist := 1; ; dist++ {
			curRow, curCol := row+dir[0]*dist, col+dir[1]*dist
			if curRow < 0 || curRow >= 8 || curCol < 0 || curCol >= 8 {
				break
			}

			curBit := uint64(1) << (curRow*8 + curCol)

			if p.opponent&curBit != 0 {
				run |= curBit
				continue
			}

			if p.player&curBit != 0 {
				flipped |= run
			}
			break
		}
	}

	return flipped
}

// DoMove places a disc for the player and returns the position from the
// opponent's point of view. An invalid move returns the same position.
func (p Position) DoMove(index int) Position {
	flipped := p.flipped(index)
	if flipped == 0 {
		return p
	}

	moveBit := uint64(1) << index
	opp := p.player | flipped | moveBit
	me := p.opponent &^ opp

	return Position{
		player:   me,
		opponent: opp,
	}
}

// IsValidMove checks if placing a disc on index flips anything.
func (p Position) IsValidMove(index int) bool {
	if index < 0 || index >= 64 {
		return false
	}

	return p.Moves()&(uint64(1)<<index) != 0
}
