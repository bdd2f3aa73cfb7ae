package manifest

import (
	"fmt"
	"os/exec"
	"strings"
)

// runGit runs a git subcommand in dir (empty for the current directory) and
// returns its combined output.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w",
			strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// gitClone clones a git repository to dest.
func gitClone(url, dest string) error {
	_, err := runGit("", "clone", "--quiet", url, dest)
	return err
}

// gitCheckout checks out a ref (tag, branch, or commit) in a repo.
func gitCheckout(dir, ref string) error {
	_, err := runGit(dir, "checkout", "--quiet", ref)
	return err
}

// gitFetch fetches updates and tags from the remote.
func gitFetch(dir string) error {
	_, err := runGit(dir, "fetch", "--quiet", "--all", "--tags")
	return err
}

// gitCurrentCommit returns the current HEAD commit hash.
func gitCurrentCommit(dir string) (string, error) {
	return runGit(dir, "rev-parse", "HEAD")
}
