// Package adapters registers every supported export format with the core
// registry. Import it for side effects:
//
//	import _ "github.com/JonMunkholm/tradeimport/internal/core/adapters"
//
// Each file declares one format: its header layouts, action vocabulary and
// the validations it composes before building a cluster.
package adapters
