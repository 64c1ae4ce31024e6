// Package dnssd discovers devices on the local network over DNS-SD.
//
// Devices announce an _ocf._udp service whose TXT record carries the device
// UUID (di), name (n), ownership flag (ot) and CoAP scheme (sch). The
// Browser implements sdk.Discoverer only; ownership transfer and
// provisioning still go through a full sdk.Provisioner.
package dnssd
