// Package bundler defines the interface a platform/output-format pair
// implements to package apps, plus the helpers shared by every
// implementation (source copying, support package installation).
//
// Bundlers are thin orchestration around native toolchains: the heavy
// lifting (disk images, AppImages, installers) is delegated to external
// tools through the tool package.
package bundler
