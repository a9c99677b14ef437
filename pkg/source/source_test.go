package source_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/pkg/langdetect"
	"github.com/yaklabco/doclint/pkg/source"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

const calculator = "using System;\n" +
	"\n" +
	"    /// <summary>\n" +
	"    /// Adds.\n" +
	"    /// </summary>\n" +
	"    //// not documentation\n" +
	"    public int Add() {}\n"

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []source.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []source.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with CRLF",
			content: "hello\r\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, source.BuildLines([]byte(tt.content)))
		})
	}
}

func TestSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	snap := source.NewSnapshot("x.cs", []byte("ab\ncd\n"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{-1, 0, 0},
	}

	for _, tt := range tests {
		line, col := snap.LineAt(tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}

func TestSnapshot_OffsetAndLineContent(t *testing.T) {
	t.Parallel()

	snap := source.NewSnapshot("x.cs", []byte("ab\r\ncd"))

	offset, ok := snap.Offset(2, 2)
	require.True(t, ok)
	assert.Equal(t, 5, offset)

	_, ok = snap.Offset(3, 1)
	assert.False(t, ok)
	_, ok = snap.Offset(1, 0)
	assert.False(t, ok)

	assert.Equal(t, []byte("ab"), snap.LineContent(1))
	assert.Equal(t, []byte("cd"), snap.LineContent(2))
	assert.Nil(t, snap.LineContent(0))
	assert.Equal(t, 2, snap.LineCount())
}

func TestExtractRegions(t *testing.T) {
	t.Parallel()

	regions := source.ExtractRegions([]byte(calculator), "///")
	require.Len(t, regions, 1)

	region := regions[0]
	assert.Equal(t, xmldoc.Span{Start: 15, End: 65}, region.Span)
	assert.Equal(t, []xmldoc.Span{
		{Start: 15, End: 22},
		{Start: 33, End: 40},
		{Start: 47, End: 54},
	}, region.Exteriors)
}

func TestExtractRegions_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		prefix  string
		want    int
	}{
		{"no comments", "class C {}\n", "///", 0},
		{"two separated comments", "/// a\nint x;\n/// b\n", "///", 2},
		{"blank line splits", "/// a\n\n/// b", "///", 2},
		{"four slashes excluded", "//// a\n", "///", 0},
		{"trailing comment is not documentation", "int x; /// a\n", "///", 0},
		{"tab indentation", "\t/// a\n\t/// b\n", "///", 1},
		{"visual basic", "''' <summary>a</summary>\n''' <remarks/>\nSub M()\n", "'''", 1},
		{"visual basic four quotes excluded", "'''' a\n", "'''", 0},
		{"empty prefix", "/// a\n", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, source.ExtractRegions([]byte(tt.content), tt.prefix), tt.want)
		})
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	content := []byte(calculator)
	snap, err := source.NewParser().Parse(context.Background(), "Calc.cs", content)
	require.NoError(t, err)

	assert.Equal(t, "Calc.cs", snap.Path)
	assert.Equal(t, content, snap.Content)
	assert.Equal(t, langdetect.CSharp, snap.Language)
	require.Len(t, snap.Comments, 1)

	summary := snap.Comments[0].TopLevel("summary")
	require.Len(t, summary, 1)
	assert.True(t, summary[0].Closed)
	assert.Equal(t, "Adds.", strings.TrimSpace(summary[0].TextContent()))
	assert.NotContains(t, summary[0].TextContent(), "///")

	pos := snap.Position(xmldoc.Span{Start: 41, End: 46})
	assert.Equal(t, source.SourcePosition{StartLine: 4, StartColumn: 9, EndLine: 4, EndColumn: 14}, pos)
	assert.True(t, pos.IsSingleLine())
	assert.Equal(t, "Adds.", string(snap.Text(xmldoc.Span{Start: 41, End: 46})))
}

func TestParser_ForcedLanguage(t *testing.T) {
	t.Parallel()

	vb := langdetect.VisualBasic
	parser := &source.Parser{Language: &vb}

	snap, err := parser.Parse(context.Background(), "Module.cs", []byte("''' <summary>x</summary>\n"))
	require.NoError(t, err)
	assert.Equal(t, langdetect.VisualBasic, snap.Language)
	require.Len(t, snap.Comments, 1)
	assert.Len(t, snap.Comments[0].TopLevel("summary"), 1)
}

func TestParser_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := source.NewParser().Parse(ctx, "Calc.cs", []byte(calculator))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, snap)
}
