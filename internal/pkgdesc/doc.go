// Package pkgdesc defines the package metadata records produced by the
// loaders and the constructors that build them from CONTROL paragraphs or
// manifest objects. Both constructors run the field-extraction protocol, so
// a bad file reports all of its missing and unexpected fields at once.
package pkgdesc
