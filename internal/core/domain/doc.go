// Package domain contains the core business types for the matching engine:
// conversations, provider configuration, freelancer candidates, match results,
// and the assistant request/response contract.
//
// Types in this package have no dependencies on adapters or infrastructure.
// They are shared between the core services and the driven/driving ports.
package domain
