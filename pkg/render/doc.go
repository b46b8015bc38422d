// Package render projects roadmap records into display trees and serialises
// those trees through named renderers.
//
// Project is pure: it copies every list, keeps the order given by the record,
// and numbers phases from 1. Renderers (text and json here, html in
// pkg/renderers/html) consume the tree and never see the mutable record.
package render
