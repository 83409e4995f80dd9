// Package organizer walks the raw input tree, classifies every data file,
// and writes two mirrors of it: a renamed copy under
// <organized_dir>/<test_name>/<variable>/ and a tab-delimited table under
// <txt_dir>/<test_name>/<variable>/.
//
// A run holds an exclusive lock on the organized tree, records each file's
// outcome in the manifest, and never aborts on a single bad file; failures
// are logged and counted. Empty sub-folders left in either output root are
// removed when the run ends.
package organizer
