/*
Package toolchain provides the building blocks used to describe where a
native C/C++ toolchain lives on the host: a write-once table of resolved
paths, advisory validation of that table and a registry of locators that
know how to fill it for a given toolchain vendor.
*/
package toolchain
