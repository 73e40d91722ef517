package headless

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/adivina/internal/assets"
	"github.com/jeanpaul/adivina/internal/engine"
	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/questions"
	"github.com/jeanpaul/adivina/internal/session"
)

func play(t *testing.T, input string, store knowledge.Store, finder *assets.Finder) (string, *session.Controller, error) {
	t.Helper()
	base, err := store.Load()
	require.NoError(t, err)

	eng := engine.New(store, engine.WithRand(rand.New(rand.NewSource(1))))
	c := session.New(questions.Default(), eng, base, nil)

	var out bytes.Buffer
	p := New(strings.NewReader(input), &out, finder)
	err = session.Run(context.Background(), c, p)
	return out.String(), c, err
}

func TestHeadlessLearnsNewWarframe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warframes.json")
	store := knowledge.NewJSONStore(path)

	// rol=soporte, genero=femenino, elemento=electricidad, tema=magico, dificultad=media
	input := "3\n2\nelectricidad\n5\n2\nn\n\nTrinity\ns\n"
	out, c, err := play(t, input, store, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "¿Estás pensando en EXCALIBUR?")
	assert.Contains(t, out, "¡He aprendido sobre Trinity!")
	assert.Equal(t, session.Quit, c.State())

	kb, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, knowledge.Record{
		"rol": "soporte", "genero": "femenino", "elemento": "electricidad", "tema": "magico", "dificultad": "media",
	}, kb["trinity"])
}

func TestHeadlessGuessesKnownWarframe(t *testing.T) {
	dir := t.TempDir()
	store := knowledge.NewJSONStore(filepath.Join(dir, "warframes.json"))
	require.NoError(t, store.Save(knowledge.Base{
		"trinity": {"rol": "soporte", "genero": "femenino"},
		"rhino":   {"rol": "supervivencia", "genero": "masculino"},
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trinity.png"), []byte("png"), 0644))

	input := "3\n2\n1\n1\n1\nsí\nj\n"
	out, _, err := play(t, input, store, assets.NewFinder(dir))
	assert.ErrorIs(t, err, io.EOF)

	assert.Contains(t, out, "¿Estás pensando en TRINITY?")
	assert.Contains(t, out, "[imagen: "+filepath.Join(dir, "trinity.png")+"]")
	assert.Contains(t, out, "¡Genial! Adiviné correctamente.")
	// Restarted, then input ran out: the next question was shown and EOF ended the game.
	assert.Equal(t, 2, strings.Count(out, "Rol:"))
}

func TestHeadlessRepromptsOnBadInput(t *testing.T) {
	store := knowledge.NewJSONStore(filepath.Join(t.TempDir(), "warframes.json"))
	input := "9\nfoo\n1\n1\n1\n1\n1\nquizás\ns\ns\n"
	out, c, err := play(t, input, store, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Elige un número entre 1 y 5."))
	assert.Equal(t, session.Quit, c.State())
}
