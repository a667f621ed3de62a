package utils

import (
	"github.com/davidscottmills/goeditorjs"
)

var editorJSMarkdownEngine *goeditorjs.MarkdownEngine

func init() {
	editorJSMarkdownEngine = goeditorjs.NewMarkdownEngine()
	editorJSMarkdownEngine.RegisterBlockHandlers(
		&goeditorjs.HeaderHandler{},
		&goeditorjs.ParagraphHandler{},
		&goeditorjs.ListHandler{},
		&goeditorjs.CodeBoxHandler{},
		&goeditorjs.ImageHandler{},
	)
}

// ConvertEditorJSBlocksToMarkdown flattens a rich-text (Editor.js block)
// journal body to markdown, used for excerpts and AI snippets.
func ConvertEditorJSBlocksToMarkdown(blockString string) (string, error) {
	return editorJSMarkdownEngine.GenerateMarkdown(blockString)
}
