// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

// Predefined FSE distributions for the three sequence code streams, taken
// verbatim from RFC 8878 §3.1.1.3.2.2.1.

var predefinedLiteralsLengthDistribution = []int16{
	4, 3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 3, 2, 1, 1, 1, 1, 1, -1, -1, -1, -1,
}

const predefinedLiteralsLengthAccuracyLog uint8 = 6

var predefinedMatchLengthDistribution = []int16{
	1, 4, 3, 2, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, -1, -1,
}

const predefinedMatchLengthAccuracyLog uint8 = 6

var predefinedOffsetDistribution = []int16{
	1, 1, 1, 1, 1, 1, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1,
}

const predefinedOffsetAccuracyLog uint8 = 5

func buildPredefinedLiteralsLengthDistribution() (uint8, []int16, error) {
	return predefinedLiteralsLengthAccuracyLog, predefinedLiteralsLengthDistribution, nil
}

func buildPredefinedMatchLengthDistribution() (uint8, []int16, error) {
	return predefinedMatchLengthAccuracyLog, predefinedMatchLengthDistribution, nil
}

func buildPredefinedOffsetDistribution() (uint8, []int16, error) {
	return predefinedOffsetAccuracyLog, predefinedOffsetDistribution, nil
}

func predefinedLiteralsLengthTable() (*fseTable, error) {
	return buildFSETable(predefinedLiteralsLengthAccuracyLog, predefinedLiteralsLengthDistribution)
}

func predefinedMatchLengthTable() (*fseTable, error) {
	return buildFSETable(predefinedMatchLengthAccuracyLog, predefinedMatchLengthDistribution)
}

func predefinedOffsetTable() (*fseTable, error) {
	return buildFSETable(predefinedOffsetAccuracyLog, predefinedOffsetDistribution)
}

// codeValue is a code-to-value table entry: baseline plus the count of
// extra raw bits that must be read and added to it.
type codeValue struct {
	baseline  uint32
	extraBits uint8
}

// literalsLengthCodes maps a literals-length code (0..35) to its baseline
// and extra-bit count (RFC 8878 §3.1.1.3.2.1.1).
var literalsLengthCodes = [...]codeValue{
	{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0},
	{8, 0}, {9, 0}, {10, 0}, {11, 0}, {12, 0}, {13, 0}, {14, 0}, {15, 0},
	{16, 1}, {18, 1}, {20, 1}, {22, 1}, {24, 2}, {28, 2}, {32, 3}, {40, 3},
	{48, 4}, {64, 6}, {128, 7}, {256, 8}, {512, 9}, {1024, 10}, {2048, 11},
	{4096, 12}, {8192, 13}, {16384, 14}, {32768, 15}, {65536, 16},
}

// matchLengthCodes maps a match-length code (0..52) to its baseline and
// extra-bit count (RFC 8878 §3.1.1.3.2.1.2).
var matchLengthCodes = [...]codeValue{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 0}, {12, 0}, {13, 0}, {14, 0}, {15, 0}, {16, 0}, {17, 0}, {18, 0},
	{19, 0}, {20, 0}, {21, 0}, {22, 0}, {23, 0}, {24, 0}, {25, 0}, {26, 0},
	{27, 0}, {28, 0}, {29, 0}, {30, 0}, {31, 0}, {32, 0}, {33, 0}, {34, 0},
	{35, 1}, {37, 1}, {39, 1}, {41, 1}, {43, 2}, {47, 2}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 5}, {131, 7}, {259, 8}, {515, 9}, {1027, 10},
	{2051, 11}, {4099, 12}, {8195, 13}, {16387, 14}, {32771, 15}, {65539, 16},
}

// offsetCodeValue returns the baseline (1<<code) and extra-bit count
// (code) for an offset code; offset codes have no fixed table since a
// block's window size bounds how large a code may legally appear.
func offsetCodeValue(code uint8) codeValue {
	return codeValue{baseline: uint32(1) << code, extraBits: code}
}
