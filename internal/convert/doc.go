// Package convert locates the tabular region of a semi-structured instrument
// export and re-serializes it as tab-delimited text.
//
// LocateDataStart is a shape heuristic: it stops at the first line that
// carries a known header marker or merely looks like delimited numbers. It
// does not tell a numeric header apart from the first data row. The line it
// returns is consumed as the column header by Table, so when the first hit
// is already data that row is not carried into the output.
//
// Lines arrive without terminators but are tested as if each ended in "\n",
// including a final line that had none. A line ending in a digit and a space
// therefore counts as numeric.
package convert
