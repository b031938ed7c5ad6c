package cli

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTableWriter_Render(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders("name", "Kind", "STATUS")
	tw.AppendRow("web1.example.com", "virtual", "")
	tw.AppendRow("db1", "hardware", "RELOAD_OS")

	require.NoError(t, tw.Render())
	expected := "" +
		"NAME               KIND       STATUS\n" +
		"web1.example.com   virtual\n" +
		"db1                hardware   RELOAD_OS\n"
	assert.Equal(t, expected, buf.String())
}

func TestPlainTableWriter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders("a", "b")
	tw.SetNoHeaders(true)
	tw.AppendRow("1", "2")

	require.NoError(t, tw.Render())
	assert.Equal(t, "1   2\n", buf.String())
}

func TestPlainTableWriter_EmptyWithHeaders(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders("name")

	require.NoError(t, tw.Render())
	assert.Equal(t, "NAME\n", buf.String())
}

func TestPlainTableWriter_RowShapes(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders("a", "b")
	tw.AppendRow("only")
	tw.AppendRow("x", "y", "dropped")

	require.NoError(t, tw.Render())
	assert.Equal(t, "A      B\nonly\nx      y\n", buf.String())
}

func TestPlainTableWriter_IgnoresColorCodesInWidth(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders("status", "x")
	tw.AppendRow(text.FgYellow.Sprint("busy"), "1")

	require.NoError(t, tw.Render())
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "STATUS   X", string(lines[0]))
	assert.Equal(t, text.FgYellow.Sprint("busy")+"     1", string(lines[1]))
}

func TestPlainTableWriter_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainTableWriter(&buf).Render())
	assert.Empty(t, buf.String())
}
