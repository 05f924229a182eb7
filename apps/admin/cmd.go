package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/kat-co/vala"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/relationship"
	"github.com/trezcool/classbook/core/school"
)

var errHelp = errors.New("help provided")

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitLoad  = 3 // fixtures or snapshots could not be loaded
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case err == errHelp:
		return exitUsage
	case core.IsLoadError(err):
		return exitLoad
	default:
		return exitError
	}
}

type commandLine struct {
	out           io.Writer
	tty           bool // table output instead of JSON
	store         core.SnapshotStore
	fixtures      fs.FS
	logger        core.Logger
	generateCount int
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  generate [-count N]                                   - append N random students")
	fmt.Fprintln(cli.out, "  students [-degree D] [-class C] [-json]               - list students")
	fmt.Fprintln(cli.out, "  assign -teacher T -matter M -degree D -class C        - assign a teacher to a class")
	fmt.Fprintln(cli.out, "  relationships [-degree D] [-class C] [-json]          - list teacher assignments")
	fmt.Fprintln(cli.out, "  export -o FILE [-degree D] [-class C]                 - write students to an XLSX workbook")
	fmt.Fprintln(cli.out, "  diff [-key studentsDB|relationshipsDB]                - compare a snapshot with its fixture")
	fmt.Fprintln(cli.out, "  reset                                                 - delete every snapshot")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(cli.out)
	return fset
}

// parse maps -h and bad flags to errHelp; the flag set already printed why.
func parse(fset *flag.FlagSet, args []string) error {
	if err := fset.Parse(args); err != nil {
		return errHelp
	}
	return nil
}

// selectionFlags registers -degree and -class; an empty value leaves its side unconstrained.
func selectionFlags(fset *flag.FlagSet) func() (core.Selection, error) {
	degree := fset.String("degree", "", "Only this degree id.")
	class := fset.String("class", "", "Only this class position.")
	return func() (core.Selection, error) {
		var sel core.Selection
		for _, p := range []struct {
			name string
			val  string
			dst  **int
		}{
			{"degree", *degree, &sel.DegreeID},
			{"class", *class, &sel.ClassID},
		} {
			val := strings.TrimSpace(p.val)
			if val == "" {
				continue
			}
			n, err := strconv.Atoi(val)
			if err != nil {
				return sel, fmt.Errorf("-%s must be an integer (got %q)", p.name, p.val)
			}
			*p.dst = &n
		}
		return sel, nil
	}
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "generate":
		cmd := cli.newFlagSet("generate")
		count := cmd.Int("count", cli.generateCount, "How many students to generate.")
		if err := parse(cmd, args[2:]); err != nil {
			return err
		}
		return cli.generate(ctx, *count)

	case "students":
		cmd := cli.newFlagSet("students")
		selection := selectionFlags(cmd)
		asJSON := cmd.Bool("json", false, "Print JSON even on a terminal.")
		if err := parse(cmd, args[2:]); err != nil {
			return err
		}
		sel, err := selection()
		if err != nil {
			return err
		}
		return cli.students(ctx, sel, *asJSON)

	case "assign":
		cmd := cli.newFlagSet("assign")
		var a relationship.Assignment
		cmd.IntVar(&a.TeacherID, "teacher", 0, "The teacher id.")
		cmd.IntVar(&a.MatterID, "matter", 0, "The subject id.")
		cmd.IntVar(&a.DegreeID, "degree", 0, "The degree id.")
		cmd.IntVar(&a.ClassID, "class", 0, "The class position.")
		if err := parse(cmd, args[2:]); err != nil {
			return err
		}
		if err := vala.BeginValidation().Validate(
			vala.GreaterThan(a.TeacherID, 0, "teacher"),
			vala.GreaterThan(a.MatterID, 0, "matter"),
			vala.GreaterThan(a.DegreeID, 0, "degree"),
			vala.GreaterThan(a.ClassID, 0, "class"),
		).Check(); err != nil {
			cmd.Usage()
			return errHelp
		}
		return cli.assign(ctx, a)

	case "relationships":
		cmd := cli.newFlagSet("relationships")
		selection := selectionFlags(cmd)
		asJSON := cmd.Bool("json", false, "Print JSON even on a terminal.")
		if err := parse(cmd, args[2:]); err != nil {
			return err
		}
		sel, err := selection()
		if err != nil {
			return err
		}
		return cli.relationships(ctx, sel, *asJSON)

	case "export":
		cmd := cli.newFlagSet("export")
		selection := selectionFlags(cmd)
		output := cmd.String("o", "", "The XLSX file to write.")
		if err := parse(cmd, args[2:]); err != nil {
			return err
		}
		if *output == "" {
			cmd.Usage()
			return errHelp
		}
		sel, err := selection()
		if err != nil {
			return err
		}
		return cli.export(ctx, *output, sel)

	case "diff":
		cmd := cli.newFlagSet("diff")
		key := cmd.String("key", core.StudentsKey, "The snapshot to compare: studentsDB or relationshipsDB.")
		if err := parse(cmd, args[2:]); err != nil {
			return err
		}
		return cli.diff(ctx, *key)

	case "reset":
		if err := parse(cli.newFlagSet("reset"), args[2:]); err != nil {
			return err
		}
		return cli.reset(ctx)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) load(ctx context.Context) (*school.School, error) {
	return school.Load(ctx, cli.fixtures, cli.store, cli.logger)
}
