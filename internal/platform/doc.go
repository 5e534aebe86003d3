// Package platform implements the platform-expression language used to
// qualify dependencies and the Supports field, e.g. "windows & !static" or
// "(linux | osx) & arm64". Identifiers evaluate against a caller-supplied
// truth table; the empty expression matches every platform.
package platform
