// Package utils provides loose type conversion helpers for decoded JSON values,
// such as remote snapshot fields that are a bool on some servers and a number on others.
package utils
