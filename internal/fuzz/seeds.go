package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// languageSeeds cover the constructs the rules rewrite.
var languageSeeds = []string{
	"",
	"let x = foo(try bar())\n",
	"let y = await foo(await bar())\n",
	"switch value {\ncase .pair(let a, let b): break\ncase let .single(c): print(c)\ndefault: break\n}\n",
	"import Foundation\n\nstruct S {\n    let a = 1   \n    func f() {}\n}\n",
	"#if DEBUG\nlet mode = \"debug\"\n#else\nlet mode = \"release\"\n#endif\n",
	"let s = \"value: \\(try compute())\"\n",
	"let block = \"\"\"\n    text   \n    \"\"\"\n",
	"func f<T: Equatable>(_ a: [T]) throws -> T? { a.first }\n",
	"let open = \"unterminated\n/* never closed",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.swift файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".swift" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
