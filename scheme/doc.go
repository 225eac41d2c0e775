// Package scheme loads binding sets from files and applies them to an
// engine.
//
// A scheme is a named collection of hotkey and sequence bindings, each
// referencing an action by name. The application supplies the action
// implementations at apply time, so schemes stay data and can be shipped,
// edited, and reloaded without recompiling.
//
// # Formats
//
// Three sources produce the same Scheme value:
//
//   - JSON documents (ParseJSON, LoadFile)
//   - TOML engine configuration referencing a scheme file (LoadTOMLConfig)
//   - Lua scripts evaluated in a sandbox (LoadLua)
//
// The Lua sandbox opens only the base, table, string, and math libraries.
// Scripts declare bindings through the name, bind, and sequence globals and
// cannot touch the file system or the process.
//
// # Applying
//
// Apply is lenient the way configuration loading should be: a binding whose
// action is unknown or whose descriptor fails to parse is skipped with a
// recorded reason, and every well-formed binding still lands. The returned
// Applied value unregisters everything on Close.
//
// # Live reload
//
// Watch monitors a scheme file through fsnotify and reapplies it when it
// changes. A reload that fails to parse keeps the previous bindings active.
package scheme
