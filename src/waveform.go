package stxc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var ErrNoSamples = errors.New("no samples")

// Longest text line we are prepared to look at.
const maxLineLen = 1 << 20

/*------------------------------------------------------------------
 *
 * Name:	parseLeadingInt
 *
 * Purpose:	Pick the number off the front of a text line.
 *
 * Inputs:	line	- One line of text.
 *
 *		bitSize	- Size of the destination integer.  Values that
 *			  do not fit make the line unusable.
 *
 * Returns:	Value and true, or false if the line is blank, a
 *		comment, or does not start with a number.
 *
 * Description:	Leading white space and a sign are allowed.  Whatever
 *		follows the digits is ignored so "12 mV" reads as 12.
 *
 *------------------------------------------------------------------*/

func parseLeadingInt(line string, bitSize int) (int64, bool) {
	if len(line) == 0 || line[0] == '#' {
		return 0, false
	}

	var i = 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}

	var start = i
	if i < len(line) && (line[i] == '+' || line[i] == '-') {
		i++
	}

	var digits = i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}

	if i == digits {
		return 0, false
	}

	var v, err = strconv.ParseInt(line[start:i], 10, bitSize)
	if err != nil {
		return 0, false
	}

	return v, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// ReadWaveformText reads one sample per line.  Blank, comment and
// unparsable lines are skipped.
func ReadWaveformText(r io.Reader, c Conditioner) ([]int, error) {
	var samples []int

	var scanner = bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLen)

	for scanner.Scan() {
		var v, ok = parseLeadingInt(scanner.Text(), 64)
		if ok {
			samples = append(samples, c.Condition(v))
		}
	}

	return samples, scanner.Err()
}

// ReadWaveformBin16 reads 16 bit little endian words.  In signed mode the
// word is two's complement, in unsigned 14 bit mode it is taken as is.
// A dangling odd byte at the end is dropped.
func ReadWaveformBin16(r io.Reader, c Conditioner) ([]int, error) {
	var samples []int

	var br = bufio.NewReader(r)
	var word [2]byte

	for {
		var _, err = io.ReadFull(br, word[:])
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return samples, err
		}

		var u = binary.LittleEndian.Uint16(word[:])

		if c.Unsigned14 {
			samples = append(samples, c.Condition(int64(u)))
		} else {
			samples = append(samples, c.Condition(int64(int16(u))))
		}
	}

	return samples, nil
}

// LoadWaveform reads and conditions a whole input file.  Baseline
// handling is left to the caller since auto baseline needs every sample.
func LoadWaveform(path string, bin16 bool, c Conditioner) ([]int, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer f.Close()

	var samples []int
	if bin16 {
		samples, err = ReadWaveformBin16(f, c)
	} else {
		samples, err = ReadWaveformText(f, c)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("input file %s: %w", path, ErrNoSamples)
	}

	return samples, nil
}
