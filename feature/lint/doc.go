// Package lint reports suspicious but valid assets of an Input collection:
// overlong titles and descriptions, point values outside the usual scale and
// local-only assets sharing a title.
//
// Issues never block a save. Callers print them as warnings after the local
// file has been written.
package lint
