package network

import (
	"github.com/vishvananda/netlink"
)

// Netlinker is the subset of netlink used for interface lookups.
// *netlink.Handle satisfies it.
type Netlinker interface {
	LinkByName(name string) (netlink.Link, error)
	LinkList() ([]netlink.Link, error)
}

// SystemController abstracts access to control files such as kernel tunables.
type SystemController interface {
	ReadLayer(path string) (string, error)
	WriteLayer(path, value string) error
	IsNotExist(err error) bool
}

// RealNetlinker is a concrete implementation of Netlinker using the
// netlink package in the current network namespace.
type RealNetlinker struct{}

func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}

func (r *RealNetlinker) LinkList() ([]netlink.Link, error) {
	return netlink.LinkList()
}
