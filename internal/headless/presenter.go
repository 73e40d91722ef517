// Package headless plays the game on plain text streams: numbered options
// on the way out, one line per answer on the way in.
package headless

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeanpaul/adivina/internal/assets"
	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/session"
)

var _ session.Presenter = (*Presenter)(nil)

// Presenter implements session.Presenter over a reader and a writer.
type Presenter struct {
	in     *bufio.Scanner
	out    io.Writer
	assets *assets.Finder
}

// New returns a console presenter. finder may be nil.
func New(in io.Reader, out io.Writer, finder *assets.Finder) *Presenter {
	return &Presenter{in: bufio.NewScanner(in), out: out, assets: finder}
}

// readLine returns the next trimmed line, or io.EOF once input is exhausted.
func (p *Presenter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Presenter) ShowQuestion(attribute string, options []string) (string, error) {
	fmt.Fprintf(p.out, "\n%s:\n", knowledge.DisplayName(attribute))
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, strings.ToUpper(o))
	}

	for {
		fmt.Fprint(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, o := range options {
			if strings.EqualFold(o, line) {
				return o, nil
			}
		}
		fmt.Fprintf(p.out, "Elige un número entre 1 y %d.\n", len(options))
	}
}

func (p *Presenter) ShowPrediction(entity string) {
	fmt.Fprintf(p.out, "\n¿Estás pensando en %s?\n", strings.ToUpper(entity))
	if path, ok := p.assets.Lookup(entity); ok {
		fmt.Fprintf(p.out, "  [imagen: %s]\n", path)
	}
}

func (p *Presenter) RequestConfirmation() (bool, error) {
	for {
		fmt.Fprint(p.out, "(s/n) > ")
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "s", "si", "sí", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (p *Presenter) RequestEntityName() (string, error) {
	fmt.Fprintln(p.out, "No acerté. ¿En qué Warframe estabas pensando?")
	fmt.Fprint(p.out, "> ")
	return p.readLine()
}

func (p *Presenter) ShowOutcome(kind session.Outcome, entity string) {
	switch kind {
	case session.OutcomeCorrect:
		fmt.Fprintln(p.out, "¡Genial! Adiviné correctamente.")
	case session.OutcomeLearned:
		fmt.Fprintf(p.out, "¡He aprendido sobre %s!\n", knowledge.DisplayName(entity))
	}
}

func (p *Presenter) ShowError(err error) {
	fmt.Fprintf(p.out, "error: %v\n", err)
}

func (p *Presenter) OfferRestartOrQuit() (session.Choice, error) {
	for {
		fmt.Fprint(p.out, "¿Jugar de nuevo? (j = jugar, s = salir) > ")
		line, err := p.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return session.ChoiceQuit, nil
			}
			return session.ChoiceQuit, err
		}
		switch strings.ToLower(line) {
		case "j", "jugar", "r", "restart":
			return session.ChoiceRestart, nil
		case "s", "salir", "q", "quit":
			return session.ChoiceQuit, nil
		}
	}
}
