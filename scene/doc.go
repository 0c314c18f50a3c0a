// Package scene ties the released scene schema versions together: it holds
// the scheme knowing every version, the pairwise converters between adjacent
// versions and the migration driver composing them across an arbitrary
// version span.
//
// Upgrades are total: every schema-valid scene of version K converts to
// version K+1 without failure, new fields receiving version-pinned defaults.
// Downgrades always produce a value and report the set of fields the target
// version cannot represent; remaining fields whose representation differs
// (palette references versus embedded colors) are resolved deterministically,
// never dropped.
package scene
