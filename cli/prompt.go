package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errAborted = errors.New("aborted")

// prompter reads answers line by line from the command's input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

func (p *prompter) ask(question string) (answer string, err error) {
	fmt.Fprint(p.out, question)
	answer, err = p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		err = errors.Wrap(err, "failed to read answer")
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// confirm asks a y/N question. Anything but y or yes declines.
func (p *prompter) confirm(question string) (ok bool, err error) {
	answer, err := p.ask(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// confirmTyped makes the user retype expected exactly.
func (p *prompter) confirmTyped(expected string) (ok bool, err error) {
	answer, err := p.ask(fmt.Sprintf("Type %q to confirm: ", expected))
	if err != nil {
		return false, err
	}
	return answer == expected, nil
}
