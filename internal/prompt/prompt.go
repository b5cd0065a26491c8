// Package prompt renders the fixed instruction template sent to the
// completion endpoint for every source file.
package prompt

import "fmt"

// Template is the card-generation instruction set. Only the file path and
// file text vary between invocations.
const Template = `You are CodeCardGPT, an elite software architect.
Create a concise "index card" for the following module, such that when applied systematically to the whole codebase, the aggregate compressed knowledge about the codebase can be accessible and planned from in a large re-architecture requirement.

Rules
- ONLY analyse the file pasted below
- Do NOT invent functions that are not listed.
- Write in bullet points, max 120 words total.
- Field names exactly: file (relative filepath from root folder of project, purpose), classes, dependencies, exports, internals, emitsOrListeners, smells, data flow

` + "```" + `%s
%s
` + "```" + `
`

// Build substitutes the relative path label and file text into Template.
// Oversized file text is passed through untouched; context-limit failures are
// the completion client's to report.
func Build(relPath, text string) string {
	return fmt.Sprintf(Template, relPath, text)
}
