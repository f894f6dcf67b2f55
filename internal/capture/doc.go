// Package capture reads and writes recorded debug messages.
//
// Two formats are supported. A .vkcap file is a msgpack stream: one Header followed by
// records. A .ndjson file holds one JSON record per line and is meant to be written by
// hand; fields that are left out take their zero value.
package capture
