// Package textutil provides filename sanitization for book and chapter titles.
//
// Audible metadata regularly carries accented characters, smart quotes, and
// punctuation that is unsafe in filesystem paths. Sanitization folds text to
// its ASCII skeleton (NFKD decomposition with non-ASCII runes dropped) and
// collapses anything else to underscores, so output directories and chapter
// filenames stay portable across filesystems.
package textutil
