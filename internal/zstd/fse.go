// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import "math/bits"

const maxAccuracyLog = 9
const maxFSESymbols = 256

// fseEntry is one state of a built FSE table: the symbol it produces, the
// baseline added to the bits read from the bitstream, and how many bits
// that update reads.
type fseEntry struct {
	output     uint16
	baseline   uint16
	bitsToRead uint8
}

// fseTable is immutable once built: the alternating decoder and repeat-mode
// reuse both require cheap duplication, so callers share it by reference or
// copy the slice header freely — nothing here is ever mutated in place.
type fseTable struct {
	al      uint8
	entries []fseEntry
}

func (t *fseTable) size() int { return 1 << t.al }

// parseNormalizedDistribution reads an FSE accuracy log and normalized
// probability distribution from a forward bit stream (RFC 8878 §4.1.1).
func parseNormalizedDistribution(p *forwardBitParser) (uint8, []int16, error) {
	v, err := p.take(4)
	if err != nil {
		return 0, nil, err
	}
	al := uint8(v) + 5
	if al > maxAccuracyLog {
		return 0, nil, errAccuracyLogTooLarge(int(al))
	}

	remaining := int32(1) << al
	var dist []int16
	nSym := 0

symbols:
	for remaining > 0 && nSym < maxFSESymbols {
		bitsToRead := bits.Len(uint(remaining + 1))

		peeked, err := p.peek(bitsToRead)
		if err != nil {
			return 0, nil, err
		}
		lowerMask := uint64(1<<(bitsToRead-1)) - 1
		threshold := uint64(1<<bitsToRead) - 1 - uint64(remaining+1)

		var decoded int32
		switch {
		case (peeked & lowerMask) < threshold:
			v, err := p.take(bitsToRead - 1)
			if err != nil {
				return 0, nil, err
			}
			decoded = int32(v)
		case peeked > lowerMask:
			v, err := p.take(bitsToRead)
			if err != nil {
				return 0, nil, err
			}
			decoded = int32(v) - int32(threshold)
		default:
			v, err := p.take(bitsToRead)
			if err != nil {
				return 0, nil, err
			}
			decoded = int32(v)
		}

		proba := int16(decoded - 1)
		abs := int32(proba)
		if abs < 0 {
			abs = -abs
		}
		remaining -= abs
		dist = append(dist, proba)
		nSym++

		if proba == 0 {
			for {
				zeros, err := p.take(2)
				if err != nil {
					return 0, nil, err
				}
				for z := uint64(0); z < zeros; z++ {
					nSym++
					dist = append(dist, 0)
					if nSym >= maxFSESymbols {
						break symbols
					}
				}
				if zeros != 3 {
					break
				}
			}
		}
	}

	if remaining != 0 || nSym >= maxFSESymbols {
		return 0, nil, errCorruptedTable
	}
	return al, dist, nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// buildFSETable constructs a 2^al-entry state table from a normalized
// distribution (RFC 8878 §4.1.1, "Distributing Symbol Values").
func buildFSETable(al uint8, dist []int16) (*fseTable, error) {
	if al > maxAccuracyLog {
		return nil, errAccuracyLogTooLarge(int(al))
	}
	size := 1 << al
	entries := make([]fseEntry, size)
	filled := make([]bool, size)

	// Less-than-one-probability symbols fill from the end, in reverse
	// symbol order.
	pos := size - 1
	for i := len(dist) - 1; i >= 0; i-- {
		if dist[i] == -1 {
			entries[pos] = fseEntry{output: uint16(i), baseline: 0, bitsToRead: al}
			filled[pos] = true
			pos--
		}
	}

	// Place the remaining positive-probability symbols.
	position := 0
	lastPositiveSymbol := -1
	for i, p := range dist {
		if p > 0 {
			lastPositiveSymbol = i
		}
	}
	for symbol, proba := range dist {
		if proba <= 0 {
			continue
		}
		for i := int16(0); i < proba; i++ {
			if filled[position] {
				return nil, errCorruptedTable
			}
			entries[position] = fseEntry{output: uint16(symbol)}
			filled[position] = true

			if symbol == lastPositiveSymbol && i == proba-1 {
				break
			}
			advanced := 0
			for {
				position = (position + size/2 + size/8 + 3) % size
				advanced++
				if !filled[position] {
					break
				}
				if advanced > size {
					return nil, errCorruptedTable
				}
			}
		}
	}

	// Assign baselines and bits-to-read per symbol, grouped in table order.
	for symbol := 0; symbol < len(dist); symbol++ {
		var positions []int
		for i, e := range entries {
			if filled[i] && int(e.output) == symbol {
				positions = append(positions, i)
			}
		}
		numStates := len(positions)
		if numStates == 0 {
			continue
		}
		parts := nextPowerOfTwo(numStates)
		baseWidth := size / parts
		baseNb := uint8(bits.Len(uint(baseWidth)) - 1)

		baseline := uint16(0)
		for i := parts - numStates; i < parts; i++ {
			newI := i % numStates
			add, mult := uint8(0), uint16(1)
			if newI != i {
				add, mult = 1, 2
			}
			entries[positions[newI]].bitsToRead = baseNb + add
			entries[positions[newI]].baseline = baseline
			baseline += uint16(baseWidth) * mult
		}
	}

	for _, ok := range filled {
		if !ok {
			return nil, errCorruptedTable
		}
	}

	return &fseTable{al: al, entries: entries}, nil
}

func parseFSETable(p *forwardBitParser) (*fseTable, error) {
	al, dist, err := parseNormalizedDistribution(p)
	if err != nil {
		return nil, err
	}
	return buildFSETable(al, dist)
}
