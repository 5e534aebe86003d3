// Package registry models the sources packages are loaded from. A Registry
// maps package names to the directories holding their metadata; a Set
// combines several registries and decides which one owns a given name.
package registry
