// Package report renders run outcomes for people and tools: a terminal text
// view with a bar chart, Markdown, JSON and YAML, plus a line diff between
// two rendered reports.
package report
