package config

// DefaultTemplate is the annotated configuration written by `mdtree config
// init`. It mirrors the built-in defaults.
const DefaultTemplate = `# mdtree configuration.

search:
  # How search queries match: smart-case, case-sensitive, case-insensitive,
  # or case-sensitive-regex. Smart case is sensitive only when the query
  # contains an uppercase letter.
  matcher: smart-case

render:
  # Add slug ids to heading nodes in the parse tree.
  heading_ids: false

# Extensions treated as Markdown, without the leading dot.
file_extensions:
  - md
  - mkd
  - markdown

# Log verbosity: debug, info, warn, or error.
log_level: info
`
