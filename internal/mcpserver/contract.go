package mcpserver

// CardFormatContract describes the card artifacts the generator produces, so
// LLM consumers know what to expect when listing and reading cards.
const CardFormatContract = `# Code-Card Format Contract

Every card is the model's verbatim (whitespace-trimmed) answer to a fixed
prompt about exactly one source file. Cards are bullet-point Markdown, at most
120 words, with exactly these fields:

- ` + "`file`" + ` - relative filepath from the scanned root, plus purpose
- ` + "`classes`" + `
- ` + "`dependencies`" + `
- ` + "`exports`" + `
- ` + "`internals`" + `
- ` + "`emitsOrListeners`" + `
- ` + "`smells`" + `
- ` + "`data flow`" + `

Card content is not schema-validated; whatever the model returned is stored
verbatim.

## Filenames

A card's filename is derived from its source file's relative path: every path
segment joined with ` + "`__`" + ` and suffixed with ` + "`.md`" + `.

    b/c.js  ->  b__c.js.md

Names are unique as long as no real path segment itself contains ` + "`__`" + `.

## Aggregate

` + "`ALL_CARDS.md`" + ` holds every card from the latest run in traversal
order: a ` + "`Generated <timestamp>`" + ` header, then one
` + "`## <relative path>`" + ` section per card, separated by ` + "`---`" + `
horizontal rules. Files that failed during generation are absent.
`
