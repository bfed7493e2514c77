// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ModuleNotFoundId Id = iota + 1
	ManifestParseErrorId
	ConfigLoadFailedId
	InvalidConfigId
	RootDirRequiredId
	PermissionDeniedId
	GlobNotExpandedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

The specifier could not be resolved from the given file.

## Things you can try:
- Check for typos in the import/require specifier
- Confirm the package is installed (look for its directory under node_modules)
- If this is a relative specifier, confirm the target file exists relative to the importing file
- If this is a root-absolute specifier ("/..."), confirm ` + "`root_dir`" + ` is configured:
~~~
$ modresolve resolve "/lib/util" --from ./src/index.js --root-dir /path/to/project
~~~
- Run with verbose mode to see every candidate path that was probed:
~~~
$ modresolve --verbose resolve "<specifier>" --from <file>
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse package.json!

A manifest file was found but its contents could not be parsed as JSON, or
one of its ` + "`name`, `main` or `module`" + ` fields was not a string.
(` + "`browser`, `alias` and `source`" + ` values of any other shape are
ignored rather than rejected.)

## Things you can try:
- Validate the file with a JSON linter
- Check that ` + "`name`, `main` and `module`" + ` are strings
- Remove the offending field to fall back to the next entry-point candidate`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the modresolve configuration file.

## Configuration file locations:
- Linux: ~/.config/modresolve/config.cue
- macOS: ~/Library/Application Support/modresolve/config.cue
- Windows: %APPDATA%\modresolve\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ modresolve config init
~~~
- Check the CUE syntax of the existing file
- Remove the config file to fall back to defaults:
~~~
$ rm ~/.config/modresolve/config.cue
~~~

## Example configuration:
~~~cue
root_dir: "/home/user/project"
extensions: [".ts", ".tsx", ".js", ".json"]
builtins: {
  fs: "/home/user/project/shims/fs.js"
}
~~~`,
	}

	invalidConfigIssue = &Issue{
		id: InvalidConfigId,
		mdMsg: `
# Invalid configuration!

The configuration loaded but failed validation.

## Common causes:
- ` + "`root_dir`" + ` is a relative path (it must be absolute)
- an entry in ` + "`extensions`" + ` does not start with "."
- a ` + "`builtins`" + ` value is not an absolute shim path

## Things you can try:
- Run ` + "`modresolve config show`" + ` to see the values as loaded
- Fix the offending field in your config.cue and re-run`,
	}

	rootDirRequiredIssue = &Issue{
		id: RootDirRequiredId,
		mdMsg: `
# root_dir is required!

A root-absolute ("/...") specifier was resolved, but no
` + "`root_dir`" + ` is configured.

## Things you can try:
- Pass ` + "`--root-dir`" + ` on the command line:
~~~
$ modresolve resolve "/lib/util" --from ./src/index.js --root-dir /path/to/project
~~~
- Or set ` + "`root_dir`" + ` in your config.cue`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A filesystem probe failed because of a permission error rather than a
missing-file condition.

## Things you can try:
- Check read permissions on the directory tree being resolved
- Run the process as a user with access to the target project`,
	}

	globNotExpandedIssue = &Issue{
		id: GlobNotExpandedId,
		mdMsg: `
# Glob specifier was not expanded!

A specifier containing glob metacharacters (` + "`*`, `+`, `{}`" + `) was
classified but intentionally left unexpanded; resolving it to concrete files
is the caller's responsibility.

## Things you can try:
- Expand the returned pattern against the filesystem yourself
- If you expected a literal file, check whether the specifier truly
  contains ` + "`*`, `+`, or `{`" + ``,
	}

	issues = map[Id]*Issue{
		moduleNotFoundIssue.Id():    moduleNotFoundIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		invalidConfigIssue.Id():     invalidConfigIssue,
		rootDirRequiredIssue.Id():   rootDirRequiredIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
		globNotExpandedIssue.Id():   globNotExpandedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
