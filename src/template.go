package stxc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Template is the fixed set of correlation coefficients, tap 0 first.
type Template [NumTaps]int

// DefaultTemplate is the template built into the self-trigger firmware (st_xc).
var DefaultTemplate = Template{
	1, 0, 0, 0, 0, 0, -1, -1,
	-1, -1, -1, -2, -2, -3, -4, -4,
	-5, -5, -6, -7, -6, -7, -7, -7,
	-7, -6, -5, -4, -3, -2, -1, 0,
}

var ErrTemplateLength = errors.New("template must have exactly 32 coefficients")

// TemplateFromSlice checks the length and copies the coefficients.
func TemplateFromSlice(coeff []int) (Template, error) {
	var t Template

	if len(coeff) != NumTaps {
		return t, fmt.Errorf("%w, got %d", ErrTemplateLength, len(coeff))
	}

	copy(t[:], coeff)

	return t, nil
}

/*------------------------------------------------------------------
 *
 * Name:	ReadTemplate
 *
 * Purpose:	Read template coefficients, one integer per line.
 *
 * Description:	Blank lines and lines starting with # are skipped, as
 *		are lines that do not start with a number.  Anything after
 *		the leading number is ignored.
 *
 *------------------------------------------------------------------*/

func ReadTemplate(r io.Reader) (Template, error) {
	var coeff []int

	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var v, ok = parseLeadingInt(scanner.Text(), 32)
		if ok {
			coeff = append(coeff, int(v))
		}
	}

	if err := scanner.Err(); err != nil {
		return Template{}, err
	}

	return TemplateFromSlice(coeff)
}

// LoadTemplate reads a template file.
func LoadTemplate(path string) (Template, error) {
	var f, err = os.Open(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	defer f.Close()

	var t, readErr = ReadTemplate(f)
	if readErr != nil {
		return t, fmt.Errorf("template file %s: %w", path, readErr)
	}

	return t, nil
}
