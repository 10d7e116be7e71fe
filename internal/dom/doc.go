// Package dom is a minimal in-memory host tree for driving a robot
// without a browser.
//
// A Document is parsed from HTML. Its element nodes are event sinks, CSS
// selectors find them, and the Document itself is the Dispatcher: it runs
// the target's listeners synchronously and, for bubbling events, the
// listeners of each ancestor element in turn.
package dom
