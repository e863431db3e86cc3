package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pm1-tools/pm1/pm1"
	"github.com/pm1-tools/pm1/printer"
	"github.com/pm1-tools/pm1/util"
)

const promptText = "Please enter a positive number: "

var errNoInput = errors.New("no number given")

// obtainNumber validates the positional argument, or reads the number from
// in when it was omitted. An interactive terminal is prompted until it
// supplies a valid number; piped input gets a single attempt.
func obtainNumber(arg string, in io.Reader, interactive bool) (*big.Int, error) {
	if arg != "" {
		return util.ParsePositive(arg)
	}

	reader := bufio.NewReader(in)
	for {
		if interactive {
			fmt.Fprint(printer.Output, promptText)
		}
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(line) != "") {
			if errors.Is(err, io.EOF) {
				return nil, errNoInput
			}
			return nil, err
		}

		n, perr := util.ParsePositive(line)
		if perr == nil {
			return n, nil
		}
		if !interactive {
			return nil, pm1.ErrInvalidInput
		}
		printer.PrintInvalidInput()
	}
}

func hasPlugin(list, name string) bool {
	for _, p := range strings.Split(list, ",") {
		if strings.TrimSpace(p) == name {
			return true
		}
	}
	return false
}
