package mcpserver

// NoteFormatContract describes the source note format the pipeline expects,
// for LLM consumers that draft notes destined for publication.
const NoteFormatContract = `# Ansuz Note Format Contract

Notes are plain text exported from the note-taking application. The pipeline
reads them with the following structure.

## Structure

` + "```" + `markdown
# My Trip                          <- first non-blank line becomes the title
tags: #blog #publish #travel       <- optional, within 7 lines of the title
slug: my-great-trip                <- optional explicit URL slug

Free-form Markdown body. Local images and links are bundled:
![a photo](./img1.png)
` + "```" + `

## Rules

1. **Title** is the first non-blank line; leading ` + "`#`" + ` heading markers are
   stripped. An empty title falls back to the filename stem.
2. **Tags** come from a ` + "`tags:`" + ` line in the 7 lines after the title.
   Tokens use hashtag syntax (` + "`#word`" + `, alphanumerics/hyphen/underscore)
   and are lowercased.
3. **Control tags** drive the pipeline and never appear on the published
   post: ` + "`#blog`" + ` marks blog content, ` + "`#publish`" + ` means ready to publish,
   ` + "`#published`" + ` means already published. A note is only considered when
   it has ` + "`#blog`" + ` and at least one of the other two.
4. **Slug override**: the text after the colon on a ` + "`slug:`" + ` line. Changing
   it renames the published bundle.
5. **Local links/images** are resolved relative to the note and copied into
   the bundle's ` + "`attachments/`" + ` directory. http/https/mailto/data URLs,
   ` + "`#anchors`" + `, and absolute paths are left untouched.
6. The note's stable identity is the trailing ` + "`-<id>`" + ` suffix of its
   exported filename; renaming the title does not create a duplicate post.
`
