// Package obt wires the onboarding tool core together.
//
// A Service owns the device registry and exposes the discovery dispatcher,
// the ownership transfer orchestrator and the provisioning engine built on
// top of one provisioning SDK. Any front end drives the tool through it.
package obt
