// Package assetbuild rebuilds a static site's front-end assets.
//
// # Quick Start
//
// Run the default plan from the site root:
//
//	b := assetbuild.NewBuilder()
//	report, err := b.Build(ctx, assetbuild.DefaultPlan())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range report.Steps {
//	    fmt.Println(s.Name, s.Duration)
//	}
//
// Every run is a full, unconditional rebuild. Nothing is cached and no
// timestamps are compared.
//
// # Build Pipeline
//
// Steps run sequentially, in this order:
//
//  1. Compile the Sass source with the sass CLI (load paths, compressed style,
//     no source map by default)
//  2. Vendor-prefix the compiled stylesheet in place, with postcss and
//     autoprefixer or in-process with esbuild
//  3. Optionally minify the stylesheet with tdewolff/minify
//  4. Write the syntax-highlighting stylesheet, either by rewriting one
//     literal class token in a vendored file or by rendering a chroma style
//  5. Copy prebuilt bundles, preserving permission bits and modification time
//
// The first failing step aborts the build with a *StepError. Outputs written
// by earlier steps are left in place.
//
// # External Tools
//
// Tools are started through a CommandRunner. NewPlatformRunner picks direct
// execution on Unix and `cmd /C` dispatch on Windows, where npm installs
// .cmd shims. A non-zero exit is a *ToolExecutionError on every platform,
// carrying the tool's stdout and stderr:
//
//	var toolErr *assetbuild.ToolExecutionError
//	if errors.As(err, &toolErr) {
//	    fmt.Fprintln(os.Stderr, toolErr.Stderr)
//	}
//
// Cancelling the context kills the tool's whole process group.
//
// # Customization
//
// Functional options replace the runner, logger, or individual steps:
//
//	b := assetbuild.NewBuilder(
//	    assetbuild.WithRunner(&assetbuild.ExecRunner{Dir: siteRoot}),
//	    assetbuild.WithLogger(logrus.StandardLogger()),
//	)
package assetbuild
