package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"eventcreator/internal/composer"
	"eventcreator/internal/domain"
	"eventcreator/internal/notify"
	"eventcreator/internal/registry"
	"eventcreator/internal/store"
)

const helpText = `commands:
  show                         print the form, images, modules and save state
  set <field> <value>          edit a field (title, phoneNumber, dateTime, location, costPerPerson, description)
  save                         save the draft now
  resume                       reload the stored draft from the backend
  publish                      validate, confirm and publish
  upload <flyer|background> <path>
  modules                      list addable modules
  more                         toggle the full module list
  add <type>                   add a module
  remove <key>                 remove a module
  module <key> [json]          print or replace a module's data
  toasts                       list notifications
  retry <id>                   run a notification's action
  dismiss <id>                 dismiss a notification
  discard                      clear the form
  quit`

// shell is a line-oriented front end over a Composer.
type shell struct {
	in       *bufio.Scanner
	out      io.Writer
	outMu    sync.Mutex
	store    *store.Store
	center   *notify.Center
	modules  registry.Source
	composer *composer.Composer

	seenMu sync.Mutex
	seen   map[string]bool
}

func newShell(in *bufio.Scanner, out io.Writer, st *store.Store, center *notify.Center, modules registry.Source) *shell {
	sh := &shell{in: in, out: out, store: st, center: center, modules: modules, seen: map[string]bool{}}
	center.Subscribe(sh.onToasts)
	return sh
}

func (s *shell) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// onToasts prints toasts the first time they appear.
func (s *shell) onToasts(list []domain.Toast) {
	s.seenMu.Lock()
	var fresh []domain.Toast
	for _, t := range list {
		if !s.seen[t.ID] {
			s.seen[t.ID] = true
			fresh = append(fresh, t)
		}
	}
	s.seenMu.Unlock()
	for _, t := range fresh {
		s.printf("%s\n", formatToast(t))
	}
}

func formatToast(t domain.Toast) string {
	line := fmt.Sprintf("[%s] %s", t.Type, t.Message)
	if t.Action != nil {
		line += fmt.Sprintf(" (%s: retry %s)", t.Action.Label, t.ID)
	}
	return line
}

func (s *shell) confirm(_ context.Context, p composer.Prompt) bool {
	s.printf("%s\n%s [%s/%s] ", p.Title, p.Message, p.ConfirmLabel, p.CancelLabel)
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes" || answer == strings.ToLower(p.ConfirmLabel)
}

func (s *shell) run(ctx context.Context) error {
	s.printf("event creator, type \"help\" for commands\n")
	for {
		if ctx.Err() != nil {
			return nil
		}
		s.printf("> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		if quit := s.exec(ctx, s.in.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch cmd {
	case "":
	case "help":
		s.printf("%s\n", helpText)
	case "quit", "exit":
		return true
	case "show":
		s.show()
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		err = s.composer.EditField(domain.Field(field), value)
	case "save":
		err = s.composer.SaveNow(ctx)
	case "resume":
		var d *domain.Draft
		d, err = s.composer.ResumeDraft(ctx)
		if err == nil && d == nil {
			s.printf("no stored draft\n")
		}
	case "publish":
		var p *domain.Published
		p, err = s.composer.GoLive(ctx)
		if err == nil {
			s.printf("live at %s\n", p.EventURL)
		}
	case "upload":
		err = s.upload(ctx, rest)
	case "modules":
		s.listModules(ctx)
	case "more":
		s.store.ToggleShowMoreModules()
		s.listModules(ctx)
	case "add":
		var ref domain.ModuleRef
		ref, err = s.composer.AddModule(ctx, domain.ModuleType(rest))
		if err == nil {
			s.printf("added %s\n", ref.Key())
		}
	case "remove":
		var ref domain.ModuleRef
		if ref, err = s.findModule(rest); err == nil {
			s.composer.RemoveModule(ref)
		}
	case "module":
		err = s.module(ctx, rest)
	case "toasts":
		for _, t := range s.center.List() {
			s.printf("%s %s\n", t.ID, formatToast(t))
		}
	case "retry":
		if !s.center.Invoke(rest) {
			err = fmt.Errorf("no action for %q", rest)
		}
	case "dismiss":
		s.center.Dismiss(rest)
	case "discard":
		s.composer.Discard()
	default:
		err = fmt.Errorf("unknown command %q, try help", cmd)
	}

	if err != nil && !errors.Is(err, domain.ErrPublishCancelled) {
		s.printf("error: %v\n", err)
	}
	return false
}

func (s *shell) show() {
	form := s.store.Form()
	errs := s.composer.FieldErrors()
	for _, f := range domain.Fields {
		line := fmt.Sprintf("  %-14s %s", f, form.Get(f))
		if msg, ok := errs[f]; ok {
			line += "   <- " + msg
		}
		s.printf("%s\n", line)
	}
	if img := s.store.FlyerImage(); img != nil {
		s.printf("  flyer          %s\n", img.URL)
	}
	if img := s.store.BackgroundImage(); img != nil {
		s.printf("  background     %s\n", img.URL)
	}
	for _, ref := range s.store.ActiveModules() {
		data, _ := s.store.ModuleData(ref.Key())
		raw, _ := json.Marshal(data)
		s.printf("  module %-20s %s\n", ref.Key(), raw)
	}
	status := s.composer.SaveState().String()
	if id := s.store.DraftID(); id != "" {
		status += ", draft " + id
	}
	if t := s.composer.LastSaved(); !t.IsZero() {
		status += ", last saved " + t.Format("15:04:05")
	}
	s.printf("  [%s]\n", status)
}

func (s *shell) upload(ctx context.Context, args string) error {
	kind, path, ok := strings.Cut(args, " ")
	if !ok {
		return errors.New("usage: upload <flyer|background> <path>")
	}
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return err
	}
	_, err = s.composer.UploadImage(ctx, domain.ImageKind(kind), filepath.Base(path), data)
	return err
}

func (s *shell) listModules(ctx context.Context) {
	reg := s.modules.Registry(ctx)
	visible, toggle := registry.Visible(reg.Addable(s.store.ActiveModules()), s.store.ShowMoreModules())
	for _, c := range visible {
		s.printf("  %-14s %s %s: %s\n", c.Type, c.Icon, c.Label, c.Description)
	}
	if toggle {
		if s.store.ShowMoreModules() {
			s.printf("  (more: show less)\n")
		} else {
			s.printf("  (more: show all)\n")
		}
	}
}

func (s *shell) findModule(key string) (domain.ModuleRef, error) {
	active := s.store.ActiveModules()
	i := slices.IndexFunc(active, func(r domain.ModuleRef) bool { return r.Key() == key })
	if i < 0 {
		return domain.ModuleRef{}, fmt.Errorf("no active module %q", key)
	}
	return active[i], nil
}

func (s *shell) module(ctx context.Context, args string) error {
	key, raw, _ := strings.Cut(args, " ")
	ref, err := s.findModule(key)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		data, err := s.composer.EnsureModuleData(ctx, ref)
		if err != nil {
			return err
		}
		out, _ := json.MarshalIndent(data, "  ", "  ")
		s.printf("  %s\n", out)
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("module data must be a JSON object: %w", err)
	}
	return <-s.composer.ApplyModuleData(ctx, ref, data)
}
