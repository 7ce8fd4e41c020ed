// Package prompt reads interactive input for the paging tools.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/agreval/paging"
)

// Address prints label to standard output and reads one hexadecimal
// virtual address from standard input.
func Address(label string) (paging.Address, error) {
	fmt.Print(label)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("reading standard input: %v", err)
		}
		return 0, errors.New("no address given")
	}
	return paging.ParseAddress(sc.Text())
}
