// Package format defines the enumerations shared by the DataBlock binary and
// text serializers: param type tags, compression types and header flags.
package format
