// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner emulates soffice: it writes <outdir>/<base>.pdf unless told to fail.
type fakeRunner struct {
	args    []string
	fail    bool
	noWrite bool
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.args = append([]string{name}, args...)
	if f.fail {
		return []byte("Error: source file could not be loaded"), errors.New("exit status 1")
	}
	if f.noWrite {
		return nil, nil
	}
	var outdir, input string
	for i, a := range args {
		if a == "--outdir" {
			outdir = args[i+1]
		}
	}
	input = args[len(args)-1]
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return nil, os.WriteFile(filepath.Join(outdir, base+".pdf"), []byte("%PDF-1.7 "+base), 0o644)
}

func TestOfficeConverter_Convert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "modern-resume.docx")
	require.NoError(t, os.WriteFile(in, []byte("docx"), 0o644))
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	out := filepath.Join(outDir, "modern-resume.pdf")

	runner := &fakeRunner{}
	o := &OfficeConverter{binary: "soffice", run: runner}
	require.NoError(t, o.Convert(context.Background(), in, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 modern-resume", string(data))

	assert.Equal(t, "soffice", runner.args[0])
	assert.Contains(t, runner.args, "--headless")
	assert.Contains(t, runner.args, "--convert-to")
	assert.Equal(t, in, runner.args[len(runner.args)-1])
	assert.True(t, strings.HasPrefix(runner.args[1], "-env:UserInstallation=file://"))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "scratch directory removed")
}

func TestOfficeConverter_Failure(t *testing.T) {
	dir := t.TempDir()
	o := &OfficeConverter{binary: "soffice", run: &fakeRunner{fail: true}}
	err := o.Convert(context.Background(), filepath.Join(dir, "a.docx"), filepath.Join(dir, "a.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source file could not be loaded")
	assert.NoFileExists(t, filepath.Join(dir, "a.pdf"))
}

func TestOfficeConverter_NoOutput(t *testing.T) {
	dir := t.TempDir()
	o := &OfficeConverter{binary: "soffice", run: &fakeRunner{noWrite: true}}
	err := o.Convert(context.Background(), filepath.Join(dir, "a.docx"), filepath.Join(dir, "a.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced no PDF")
}

func TestNewOfficeConverter_MissingBinary(t *testing.T) {
	_, err := NewOfficeConverter("definitely-not-a-real-soffice-binary")
	require.Error(t, err)
}
