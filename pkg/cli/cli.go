package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

type Command = cli.Command

type Flag = cli.Flag
type IntFlag = cli.IntFlag
type StringFlag = cli.StringFlag
type StringSliceFlag = cli.StringSliceFlag
type BoolFlag = cli.BoolFlag

func ShowAppHelp(cmd *Command) error {
	return cli.ShowAppHelp(cmd)
}

func ShowCommandHelp(cmd *Command) error {
	return cli.ShowSubcommandHelp(cmd)
}

func Fatal(v ...any) {
	fmt.Fprintln(os.Stderr, v...)
	os.Exit(1)
}

func Info(v ...any) {
	fmt.Fprintln(os.Stderr, v...)
}

func Infof(format string, v ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
}

func Confirm(label string, placeholder bool) (bool, error) {
	choices := "Y/n"

	if !placeholder {
		choices = "y/N"
	}

	r := bufio.NewReader(os.Stdin)

	var s string

	for {
		fmt.Fprintf(os.Stderr, "%s (%s) ", label, choices)
		s, _ = r.ReadString('\n')
		s = strings.TrimSpace(s)

		if s == "" {
			return placeholder, nil
		}

		s = strings.ToLower(s)

		if s == "y" || s == "yes" {
			return true, nil
		}

		if s == "n" || s == "no" {
			return false, nil
		}
	}
}
