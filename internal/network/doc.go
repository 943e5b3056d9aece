// Package network answers the questions the apply pipeline asks of the host
// network stack: does an interface exist, and what does a control file
// currently hold. It also performs layer writes.
//
// Interface lookups go through netlink, optionally inside a named network
// namespace. Layer writes only ever overwrite existing files; a missing
// control file is reported, never created.
package network
