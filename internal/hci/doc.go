// Package hci holds the fixed catalog of standardized Bluetooth LE
// controller opcodes: a 2-byte command identifier split into a 6-bit
// group field and a 10-bit command field, with validated conversion in
// both directions. The command-encoding layer consumes it as data.
package hci
