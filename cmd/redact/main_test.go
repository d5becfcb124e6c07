package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/redact-flow/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, opts ...testutil.Option) (*testutil.RedactionService, string) {
	t.Helper()
	svc := testutil.NewRedactionService(t, opts...)

	viper.Reset()
	t.Cleanup(viper.Reset)

	downloadDir := t.TempDir()
	viper.Set("backend.url", svc.URL())
	viper.Set("download.dir", downloadDir)
	return svc, downloadDir
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(paths[i], []byte("original "+name), 0o600))
	}
	return paths
}

func TestCategoriesCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := categoriesCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	text := out.String()
	assert.Contains(t, text, "ration_card")
	assert.Contains(t, text, "Birth certificate")
	assert.Contains(t, text, "identity_verification")
	assert.Contains(t, text, "decided from the file name")
}

func TestResolveCmd(t *testing.T) {
	tests := []struct {
		want map[string]bool
		name string
		args []string
	}{
		{
			name: "identity verification",
			args: []string{"--use-case", "identity_verification", "--json"},
			want: map[string]bool{"aadhar": false, "person": false, "pan": true},
		},
		{
			name: "unclassified uses file name",
			args: []string{"--use-case", "unclassified", "--file", "pan_card.jpg", "--json"},
			want: map[string]bool{"pan": false, "person": false, "aadhar": true},
		},
		{
			name: "manual keep after use case",
			args: []string{"--use-case", "facial_verification", "--keep", "org", "--json"},
			want: map[string]bool{"person": false, "org": false, "address": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := resolveCmd()
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())

			var got map[string]bool
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			assert.Len(t, got, 11)
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
		})
	}
}

func TestResolveCmd_UnknownCategory(t *testing.T) {
	cmd := resolveCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--keep", "shoe_size"})
	assert.Error(t, cmd.Execute())
}

func TestRunSubmit_DownloadAll(t *testing.T) {
	svc, dir := setupService(t)
	paths := writeFiles(t, "id.png", "bill.pdf")

	var out bytes.Buffer
	err := runSubmit(context.Background(), strings.NewReader(""), &out, paths, submitOptions{
		flags:       selectionFlags{useCase: "address_verification"},
		downloadAll: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"id.png", "bill.pdf"}, svc.Uploaded())
	options := svc.Options()
	assert.False(t, options["address"])
	assert.True(t, options["pan"])

	data, err := os.ReadFile(filepath.Join(dir, "id_redacted.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "redacted:id_redacted.pdf", string(data))
	assert.FileExists(t, filepath.Join(dir, "bill_redacted.pdf"))
	assert.Contains(t, out.String(), "Saved bill_redacted.pdf")
}

func TestRunSubmit_ForwardAll(t *testing.T) {
	svc, _ := setupService(t, testutil.WithForwardError("b_redacted.pdf", "bucket unavailable"))
	paths := writeFiles(t, "a.pdf", "b.pdf")

	var out bytes.Buffer
	err := runSubmit(context.Background(), strings.NewReader(""), &out, paths, submitOptions{forwardAll: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 forwards failed")

	assert.Equal(t, []string{"a_redacted.pdf"}, svc.Forwarded())
	text := out.String()
	assert.Contains(t, text, "https://bucket.test/a_redacted.pdf")
	assert.Contains(t, text, "bucket unavailable")
	assert.Contains(t, text, "wa.me")
}

func TestRunSubmit_Interactive(t *testing.T) {
	svc, dir := setupService(t)
	paths := writeFiles(t, "a.pdf", "b.pdf", "c.pdf")

	var out bytes.Buffer
	input := strings.NewReader("d\nf\nq\n")
	err := runSubmit(context.Background(), input, &out, paths, submitOptions{interactive: true})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "a_redacted.pdf"))
	assert.NoFileExists(t, filepath.Join(dir, "b_redacted.pdf"))
	assert.Contains(t, out.String(), "https://bucket.test/b_redacted.pdf")
	assert.NoFileExists(t, filepath.Join(dir, "c_redacted.pdf"))
	assert.Equal(t, []string{"b_redacted.pdf"}, svc.Forwarded())
}

func TestRunSubmit_UnsupportedFile(t *testing.T) {
	svc, _ := setupService(t)
	paths := writeFiles(t, "notes.txt")

	err := runSubmit(context.Background(), strings.NewReader(""), &bytes.Buffer{}, paths, submitOptions{})
	require.Error(t, err)
	assert.Empty(t, svc.Uploaded())
}
