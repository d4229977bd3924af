// version_bump increments config.AppVersion and tags the release locally.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

const versionFile = "config/const.go"

var appVersionRe = regexp.MustCompile(`(var AppVersion = ")([^"]+)(")`)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/util/version_bump <patch|minor|major> [--no-git]")
		os.Exit(1)
	}
	bumpType := os.Args[1]
	useGit := !(len(os.Args) > 2 && os.Args[2] == "--no-git")

	if useGit {
		branch, err := getCurrentBranch()
		if err != nil {
			fmt.Println("Error determining current branch:", err)
			os.Exit(1)
		}
		if branch != "main" {
			fmt.Printf("Error: Release bumps must be performed on 'main'. Current branch: '%s'\n", branch)
			os.Exit(1)
		}
	}

	src, err := os.ReadFile(versionFile)
	if err != nil {
		fmt.Println("Error reading version file:", err)
		os.Exit(1)
	}
	updated, newVersion, err := rewriteVersion(src, bumpType)
	if err != nil {
		fmt.Println("Error bumping version:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(versionFile, updated, 0644); err != nil {
		fmt.Println("Error writing version file:", err)
		os.Exit(1)
	}
	fmt.Println("Version bumped to", newVersion)

	if !useGit {
		return
	}
	tag := "v" + newVersion
	for _, args := range [][]string{
		{"add", versionFile},
		{"commit", "-m", "Bump version to " + tag},
		{"tag", "-a", tag, "-m", "Release " + tag},
	} {
		if err := git(args...); err != nil {
			fmt.Printf("git %s failed: %v\n", args[0], err)
			os.Exit(1)
		}
	}
}

// rewriteVersion bumps the AppVersion literal in src.
func rewriteVersion(src []byte, bumpType string) ([]byte, string, error) {
	m := appVersionRe.FindSubmatch(src)
	if m == nil {
		return nil, "", fmt.Errorf("AppVersion not found in %s", versionFile)
	}
	next, err := bump(string(m[2]), bumpType)
	if err != nil {
		return nil, "", err
	}
	out := appVersionRe.ReplaceAll(src, []byte("${1}"+next+"${3}"))
	return out, next, nil
}

// bump returns version incremented by bumpType, without the "v" prefix.
func bump(version, bumpType string) (string, error) {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return "", fmt.Errorf("invalid release version: %s", version)
	}

	parts := strings.Split(strings.TrimPrefix(semver.Canonical(v), "v"), ".")
	nums := make([]int, 3)
	for i, p := range parts {
		nums[i], _ = strconv.Atoi(p) // canonical form guarantees digits
	}

	switch bumpType {
	case "patch":
		nums[2]++
	case "minor":
		nums[1]++
		nums[2] = 0
	case "major":
		nums[0]++
		nums[1], nums[2] = 0, 0
	default:
		return "", fmt.Errorf("invalid bump type: %s", bumpType)
	}
	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}

func git(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func getCurrentBranch() (string, error) {
	out, err := exec.Command("git", "branch", "--show-current").Output()
	if err != nil {
		return "", fmt.Errorf("git branch failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
