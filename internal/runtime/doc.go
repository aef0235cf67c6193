// Package runtime provides the execution context for pushbot commands.
//
// It encapsulates shared dependencies needed by actions: the repository
// handle, the logger, and the merged configuration settings.
package runtime
