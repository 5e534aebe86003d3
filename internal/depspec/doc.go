// Package depspec parses the dependency-specifier grammar shared by
// Build-Depends and Default-Features fields and by manifest dependency
// strings: comma-separated lists of qualified names such as
// "zlib, libpng[tools]:x64-windows (windows & !static)".
package depspec
