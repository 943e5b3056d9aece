package network

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
)

// NamespaceOpener returns a Netlinker bound to the named network namespace
// and a function releasing it.
type NamespaceOpener func(name string) (Netlinker, func(), error)

// InterfaceChecker reports whether network interfaces exist.
type InterfaceChecker struct {
	netlinker Netlinker
	openNS    NamespaceOpener
}

// NewInterfaceChecker creates a checker backed by the kernel.
func NewInterfaceChecker() *InterfaceChecker {
	return NewInterfaceCheckerWith(&RealNetlinker{}, OpenNamespace)
}

// NewInterfaceCheckerWith creates a checker with explicit dependencies.
func NewInterfaceCheckerWith(nl Netlinker, openNS NamespaceOpener) *InterfaceChecker {
	return &InterfaceChecker{netlinker: nl, openNS: openNS}
}

// HasInterface reports whether name exists in namespace. An empty namespace
// is the one icewall runs in. A lookup failure other than "not found" is
// returned as an error.
func (c *InterfaceChecker) HasInterface(namespace, name string) (bool, error) {
	nl, release, err := c.netlinkerFor(namespace)
	if err != nil {
		return false, err
	}
	defer release()

	if _, err := nl.LinkByName(name); err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup of interface %s failed: %w", name, err)
	}
	return true, nil
}

// Available lists interface names in namespace, sorted.
func (c *InterfaceChecker) Available(namespace string) ([]string, error) {
	nl, release, err := c.netlinkerFor(namespace)
	if err != nil {
		return nil, err
	}
	defer release()

	links, err := nl.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Attrs().Name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *InterfaceChecker) netlinkerFor(namespace string) (Netlinker, func(), error) {
	if namespace == "" {
		return c.netlinker, func() {}, nil
	}
	if c.openNS == nil {
		return nil, nil, fmt.Errorf("network namespaces not supported")
	}
	nl, release, err := c.openNS(namespace)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open network namespace %s: %w", namespace, err)
	}
	return nl, release, nil
}

// OpenNamespace opens a netlink handle inside the named namespace, as
// created by "ip netns add".
func OpenNamespace(name string) (Netlinker, func(), error) {
	ns, err := netns.GetFromName(name)
	if err != nil {
		return nil, nil, err
	}
	h, err := netlink.NewHandleAt(ns)
	if err != nil {
		ns.Close()
		return nil, nil, err
	}
	return h, func() {
		h.Close()
		ns.Close()
	}, nil
}
