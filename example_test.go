package assetbuild_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-assetbuild"
)

// ExampleRewriteTokens renames the Pygments wrapper class.
func ExampleRewriteTokens() {
	css := ".codehilite { color: red; } .codehilite .k { color: blue; }"
	fmt.Println(assetbuild.RewriteTokens(css, "codehilite", "highlight"))
	// Output: .highlight { color: red; } .highlight .k { color: blue; }
}

// ExampleSassCompiler_Args shows the command line for the default plan.
func ExampleSassCompiler_Args() {
	c := &assetbuild.SassCompiler{
		LoadPaths:  []string{"node_modules/bootstrap/scss"},
		Compressed: true,
	}
	fmt.Println(strings.Join(c.Args("scss/mph.scss", "assets/style.css"), " "))
	// Output: --load-path node_modules/bootstrap/scss --no-source-map --style compressed scss/mph.scss assets/style.css
}

// ExampleShellJoin renders the command line handed to sh -c.
func ExampleShellJoin() {
	fmt.Println(assetbuild.ShellJoin("postcss", "--use", "autoprefixer", "--replace", "My Site/style.css"))
	// Output: postcss --use autoprefixer --replace 'My Site/style.css'
}

// ExampleCmdJoin renders the command line handed to cmd /S /C.
func ExampleCmdJoin() {
	line, err := assetbuild.CmdJoin(`node_modules\.bin\postcss`, "--use", "autoprefixer", "--replace", `C:\My Site\style.css`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(line)
	// Output: node_modules\.bin\postcss --use autoprefixer --replace "C:\My Site\style.css"
}

// ExampleGenerateHighlightCSS renders a chroma style for .highlight markup.
func ExampleGenerateHighlightCSS() {
	css, err := assetbuild.GenerateHighlightCSS("monokai", "highlight")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.Contains(css, ".highlight .k"))

	_, err = assetbuild.GenerateHighlightCSS("nope", "highlight")
	fmt.Println(errors.Is(err, assetbuild.ErrUnknownHighlightStyle))
	// Output:
	// true
	// true
}

// ExamplePlan_Validate reports missing paths before any tool runs.
func ExamplePlan_Validate() {
	p := assetbuild.DefaultPlan()
	p.Stylesheet.Source = ""
	err := p.Validate()
	fmt.Println(errors.Is(err, assetbuild.ErrInvalidPlan))
	// Output: true
}
