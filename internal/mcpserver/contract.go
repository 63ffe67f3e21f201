package mcpserver

// PlanFormatContract describes the site plan format that LLM consumers
// should follow when asking for an outline.
const PlanFormatContract = `# seoscout Plan Format Contract

A plan tells the outline generator which keyword to write for and which
kind of site the page belongs to.

## Required fields

| Field     | Meaning                                                        |
|-----------|----------------------------------------------------------------|
| keyword   | Target keyword, e.g. ` + "`" + `pdf converter` + "`" + `                            |
| intent    | ` + "`" + `informational` + "`" + `, ` + "`" + `transactional` + "`" + ` or ` + "`" + `navigational` + "`" + `                |
| type      | Site type label, e.g. ` + "`" + `Online tool site` + "`" + `                        |

A plan missing any of them is rejected. Nothing is filled in for you.

## Optional fields

- ` + "`" + `outline_kind` + "`" + `: one of ` + "`" + `tool` + "`" + `, ` + "`" + `blog` + "`" + `, ` + "`" + `directory` + "`" + `, ` + "`" + `generic` + "`" + `. When present it
  selects the outline template directly. Otherwise the template is chosen from
  ` + "`" + `type` + "`" + `: labels containing "tool" give a tool page, "blog" or "knowledge-base"
  a blog post, "directory" or "navigation" a directory page, anything else the
  generic outline.

## Accepted encodings

1. **JSON** object. The full analysis report is accepted too: fields missing at
   the top level are read from the nested ` + "`" + `site_plan` + "`" + ` object.
2. **YAML** mapping with the same keys.
3. **Markdown** with a YAML frontmatter block. The ` + "`" + `---` + "`" + ` fence must be
   the first thing in the file. The body is ignored.

## Example

` + "```" + `markdown
---
keyword: pdf converter
intent: transactional
type: Online tool site
outline_kind: tool
---

# Site plan: pdf converter
` + "```" + `

Plan files written by ` + "`" + `analyze_keyword` + "`" + ` with ` + "`" + `save` + "`" + ` already follow this format.
`
