package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
	exportsvc "github.com/trezcool/apar/services/export"
)

var (
	createFileFunc = func(name string) (io.WriteCloser, error) { return os.Create(name) } // mockable

	errQuit  = errors.New("quit")
	errUsage = errors.New("invalid usage, type help")
)

type commandLine struct {
	svc    *assessment.Service
	out    *console
	logger core.Logger
	person core.Person

	id string
	wg sync.WaitGroup // in-flight submissions
}

func (cli *commandLine) printUsage() {
	cli.out.Printf(`Commands:
  show                      - show the current step
  next | prev               - move to the next or previous step
  add                       - add a row to the current table
  set FIELD VALUE           - set a field of the profile or guidance step
  set ROW FIELD VALUE       - set a field of a table row (rows are numbered from 1)
  del ROW                   - delete a table row
  submit [ROW]              - submit the current step (lectures and results: one row)
  export FILE.xlsx          - save the whole assessment as a spreadsheet
  help                      - show this message
  quit                      - wait for pending submissions and leave
`)
}

// run starts an assessment and reads commands from in until it is exhausted or quit.
func (cli *commandLine) run(ctx context.Context, in io.Reader, interactive bool) error {
	snap, err := cli.svc.Start(ctx)
	if err != nil {
		return errors.Wrap(err, "starting assessment")
	}
	cli.id = snap.ID
	defer func() { _ = cli.svc.Discard(context.Background(), cli.id) }()

	if interactive {
		cli.printUsage()
	}
	cli.print(snap)

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			cli.out.Printf("apar> ")
		}
		if !scanner.Scan() {
			break
		}
		if err = cli.exec(ctx, scanner.Text()); err != nil {
			if err == errQuit {
				break
			}
			cli.report(err)
		}
	}

	cli.wg.Wait()
	return errors.Wrap(scanner.Err(), "reading commands")
}

// report prints what the notifier did not already say.
func (cli *commandLine) report(err error) {
	switch origErr := errors.Cause(err).(type) {
	case *core.RefusedError:
		// already notified
	case *core.ValidationError:
		cli.out.Printf("error: %s\n", origErr.Error())
		for _, fld := range origErr.Fields {
			cli.out.Printf("  %s: %s\n", fld.Field, fld.Error)
		}
	default:
		cli.out.Printf("error: %v\n", err)
	}
}

func (cli *commandLine) exec(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "help":
		cli.printUsage()
		return nil
	case "quit", "exit":
		return errQuit
	case "show":
		return cli.show(ctx)
	case "next":
		snap, err := cli.svc.Advance(ctx, cli.id)
		if err != nil {
			return err
		}
		cli.print(snap)
		return nil
	case "prev":
		snap, err := cli.svc.Retreat(ctx, cli.id)
		if err != nil {
			return err
		}
		cli.print(snap)
		return nil
	case "add":
		return cli.addRow(ctx)
	case "set":
		return cli.set(ctx, args[1:])
	case "del":
		if len(args) != 2 {
			return errUsage
		}
		return cli.deleteRow(ctx, args[1])
	case "submit":
		return cli.submit(ctx, args[1:])
	case "export":
		if len(args) != 2 {
			return errUsage
		}
		return cli.export(ctx, args[1])
	default:
		return errors.Errorf("%q: no such command, type help", args[0])
	}
}

func (cli *commandLine) show(ctx context.Context) error {
	snap, err := cli.svc.Get(ctx, cli.id)
	if err != nil {
		return err
	}
	cli.print(snap)
	return nil
}

// tableSection is the section whose rows the current step shows.
func tableSection(snap assessment.Snapshot) (string, error) {
	switch snap.Section {
	case assessment.SectionProfile:
		return "", core.NewValidationError(errors.New("the profile has no rows"))
	case assessment.SectionGuidance:
		return assessment.SectionProjects, nil
	default:
		return snap.Section, nil
	}
}

// rowID resolves a 1-based row number of the current table.
func rowID(snap assessment.Snapshot, section, num string) (string, error) {
	n, err := strconv.Atoi(num)
	if err != nil {
		return "", errors.Errorf("%q: not a row number", num)
	}
	var ids []string
	switch section {
	case assessment.SectionLectures:
		for _, r := range snap.Lectures {
			ids = append(ids, r.ID)
		}
	case assessment.SectionResults:
		for _, r := range snap.Results {
			ids = append(ids, r.ID)
		}
	case assessment.SectionAttendance:
		for _, r := range snap.Attendance {
			ids = append(ids, r.ID)
		}
	case assessment.SectionProjects:
		for _, r := range snap.Guidance.Projects {
			ids = append(ids, r.ID)
		}
	}
	if n < 1 || n > len(ids) {
		return "", errors.Errorf("row %d does not exist", n)
	}
	return ids[n-1], nil
}

func (cli *commandLine) addRow(ctx context.Context) error {
	snap, err := cli.svc.Get(ctx, cli.id)
	if err != nil {
		return err
	}
	section, err := tableSection(snap)
	if err != nil {
		return err
	}
	if _, snap, err = cli.svc.AddRow(ctx, cli.id, section); err != nil {
		return err
	}
	cli.print(snap)
	return nil
}

func (cli *commandLine) set(ctx context.Context, args []string) error {
	snap, err := cli.svc.Get(ctx, cli.id)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return errUsage
	}

	// set FIELD VALUE
	_, numErr := strconv.Atoi(args[0])
	if snap.Section == assessment.SectionProfile || (snap.Section == assessment.SectionGuidance && numErr != nil) {
		if snap, err = cli.svc.SetField(ctx, cli.id, snap.Section, args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		cli.print(snap)
		return nil
	}

	// set ROW FIELD VALUE
	if len(args) < 2 {
		return errUsage
	}
	section, err := tableSection(snap)
	if err != nil {
		return err
	}
	id, err := rowID(snap, section, args[0])
	if err != nil {
		return err
	}
	if snap, err = cli.svc.UpdateRow(ctx, cli.id, section, id, args[1], strings.Join(args[2:], " ")); err != nil {
		return err
	}
	cli.print(snap)
	return nil
}

func (cli *commandLine) deleteRow(ctx context.Context, num string) error {
	snap, err := cli.svc.Get(ctx, cli.id)
	if err != nil {
		return err
	}
	section, err := tableSection(snap)
	if err != nil {
		return err
	}
	id, err := rowID(snap, section, num)
	if err != nil {
		return err
	}
	if snap, err = cli.svc.DeleteRow(ctx, cli.id, section, id); err != nil {
		return err
	}
	cli.print(snap)
	return nil
}

// submit sends in the background; the notice is printed whenever the remote answers.
func (cli *commandLine) submit(ctx context.Context, args []string) error {
	snap, err := cli.svc.Get(ctx, cli.id)
	if err != nil {
		return err
	}

	var id string
	switch snap.Section {
	case assessment.SectionLectures, assessment.SectionResults:
		if len(args) != 1 {
			return errUsage
		}
		if id, err = rowID(snap, snap.Section, args[0]); err != nil {
			return err
		}
	default:
		if len(args) != 0 {
			return errUsage
		}
	}

	section := snap.Section
	cli.out.Printf("submitting %s...\n", section)
	cli.wg.Add(1)
	go func() {
		defer cli.wg.Done()
		if err := cli.svc.Submit(ctx, cli.id, section, id); err != nil {
			if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
				for _, fld := range vErr.Fields {
					cli.out.Printf("  %s: %s\n", fld.Field, fld.Error)
				}
				return
			}
			cli.logger.Error("submitting "+section, err, cli.person)
		}
	}()
	return nil
}

func (cli *commandLine) export(ctx context.Context, name string) error {
	snap, err := cli.svc.Get(ctx, cli.id)
	if err != nil {
		return err
	}
	f, err := createFileFunc(name)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	if err = exportsvc.Write(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing export file")
	}
	cli.out.Printf("saved %s\n", name)
	return nil
}
