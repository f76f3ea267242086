package git_test

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	gitexecerrors "gitexec.dev/gitexec/internal/errors"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/testhelpers"
)

func newClient(scene *testhelpers.Scene) *git.Client {
	return git.NewClient(scene.Repo.Location())
}

func TestInitAndClone(t *testing.T) {
	t.Run("init creates the target directory", func(t *testing.T) {
		_ = testhelpers.NewScene(t, nil)
		dir := filepath.Join(t.TempDir(), "fresh")

		client := git.NewClient(git.Location{Path: dir})
		require.NoError(t, client.Init(context.Background(), git.InitOptions{InitialBranch: "trunk"}))

		_, err := os.Stat(filepath.Join(dir, ".git", "HEAD"))
		require.NoError(t, err)
		head, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
		require.NoError(t, err)
		require.Contains(t, string(head), "refs/heads/trunk")
	})

	t.Run("init bare", func(t *testing.T) {
		_ = testhelpers.NewScene(t, nil)
		dir := filepath.Join(t.TempDir(), "bare.git")

		client := git.NewClient(git.Location{Path: dir})
		require.NoError(t, client.Init(context.Background(), git.InitOptions{Bare: true}))

		_, err := os.Stat(filepath.Join(dir, "HEAD"))
		require.NoError(t, err)
	})

	t.Run("clone returns the new location", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		parent := t.TempDir()

		loc, err := client.Clone(context.Background(), scene.Dir, "copy", git.CloneOptions{Path: parent})
		require.NoError(t, err)
		require.Equal(t, filepath.Join(parent, "copy"), loc.WorkTree)

		head, err := client.At(loc).RevParse(context.Background(), "HEAD")
		require.NoError(t, err)
		require.Equal(t, testhelpers.Must(scene.Repo.GetRevision("HEAD")), head)
	})

	t.Run("bare clone has no work tree", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		parent := t.TempDir()

		loc, err := newClient(scene).Clone(context.Background(), scene.Dir, "copy.git", git.CloneOptions{Path: parent, Bare: true})
		require.NoError(t, err)
		require.Empty(t, loc.WorkTree)
		require.Equal(t, filepath.Join(parent, "copy.git"), loc.GitDir)
	})
}

func TestHistory(t *testing.T) {
	setup := func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateChangeAndCommit("first", "a"); err != nil {
			return err
		}
		return s.Repo.CreateChangeAndCommit("second", "b")
	}

	t.Run("log lists shas newest first", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)
		client := newClient(scene)

		shas, err := client.Log(context.Background(), git.LogOptions{})
		require.NoError(t, err)
		require.Equal(t, []string{
			testhelpers.Must(scene.Repo.GetRevision("HEAD")),
			testhelpers.Must(scene.Repo.GetRevision("HEAD~1")),
		}, shas)

		limited, err := client.Log(context.Background(), git.LogOptions{PathLimiter: "a_test.txt"})
		require.NoError(t, err)
		require.Equal(t, shas[1:], limited)

		counted, err := client.Log(context.Background(), git.LogOptions{Count: 1})
		require.NoError(t, err)
		require.Len(t, counted, 1)
	})

	t.Run("full log parses every commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)

		commits, err := newClient(scene).FullLog(context.Background(), git.LogOptions{})
		require.NoError(t, err)
		require.Len(t, commits, 2)
		require.Equal(t, "second\n", commits[0].Message)
		require.Equal(t, []string{commits[1].SHA}, commits[0].Parents)

		grepped, err := newClient(scene).FullLog(context.Background(), git.LogOptions{Grep: "first"})
		require.NoError(t, err)
		require.Len(t, grepped, 1)
		require.Equal(t, "first", grepped[0].Subject())

		skipped, err := newClient(scene).FullLog(context.Background(), git.LogOptions{Skip: 1})
		require.NoError(t, err)
		require.Len(t, skipped, 1)
		require.Equal(t, commits[1].SHA, skipped[0].SHA)
	})

	t.Run("commit data agrees with go-git", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)
		sha := testhelpers.Must(scene.Repo.GetRevision("HEAD"))

		commit, err := newClient(scene).CommitData(context.Background(), "HEAD")
		require.NoError(t, err)

		repo, err := gogit.PlainOpen(scene.Dir)
		require.NoError(t, err)
		expected, err := repo.CommitObject(plumbing.NewHash(sha))
		require.NoError(t, err)

		require.Equal(t, sha, commit.SHA)
		require.Equal(t, expected.TreeHash.String(), commit.Tree)
		require.Equal(t, expected.ParentHashes[0].String(), commit.Parents[0])
		require.Equal(t, expected.Message, commit.Message)

		author, ok := commit.AuthorSignature()
		require.True(t, ok)
		require.Equal(t, expected.Author.Email, author.Email)
		require.Equal(t, expected.Author.Name, author.Name)
		require.Equal(t, expected.Author.When.Unix(), author.When.Unix())
	})

	t.Run("object queries", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)
		client := newClient(scene)
		ctx := context.Background()

		objType, err := client.ObjectType(ctx, "HEAD")
		require.NoError(t, err)
		require.Equal(t, "commit", objType)

		size, err := client.ObjectSize(ctx, "HEAD:a_test.txt")
		require.NoError(t, err)
		require.Equal(t, int64(len("first")), size)

		contents, err := client.ObjectContents(ctx, "HEAD:b_test.txt")
		require.NoError(t, err)
		require.Equal(t, "second", contents)

		var streamed []byte
		require.NoError(t, client.StreamObjectContents(ctx, "HEAD:b_test.txt", func(r io.Reader) error {
			var err error
			streamed, err = io.ReadAll(r)
			return err
		}))
		require.Equal(t, "second", string(streamed))

		shown, err := client.Show(ctx, "HEAD~1", "a_test.txt")
		require.NoError(t, err)
		require.Equal(t, "first", shown)

		name, err := client.NameRev(ctx, "HEAD~1")
		require.NoError(t, err)
		require.Equal(t, "main~1", name)
	})

	t.Run("trees", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.WriteFile("src/main.go", "package main\n"); err != nil {
				return err
			}
			if err := s.Repo.RunGitCommand("add", "src"); err != nil {
				return err
			}
			return setup(s)
		})
		client := newClient(scene)
		ctx := context.Background()

		listing, err := client.LsTree(ctx, "HEAD")
		require.NoError(t, err)
		require.Contains(t, listing.Blob, "a_test.txt")
		require.Contains(t, listing.Blob, "b_test.txt")
		require.Contains(t, listing.Tree, "src")
		require.Equal(t, "100644", listing.Blob["a_test.txt"].Mode)

		full, err := client.FullTree(ctx, "HEAD")
		require.NoError(t, err)
		require.Len(t, full, 3)

		depth, err := client.TreeDepth(ctx, "HEAD")
		require.NoError(t, err)
		require.Equal(t, 3, depth)
	})
}

func TestGrep(t *testing.T) {
	t.Run("returns matches per file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.WriteFile("notes.txt", "alpha\nbeta\nAlphabet\n"); err != nil {
				return err
			}
			if err := s.Repo.RunGitCommand("add", "notes.txt"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("x", "x")
		})
		client := newClient(scene)

		matches, err := client.Grep(context.Background(), "alpha", git.GrepOptions{IgnoreCase: true})
		require.NoError(t, err)
		require.Equal(t, []git.GrepMatch{
			{Line: 1, Text: "alpha"},
			{Line: 3, Text: "Alphabet"},
		}, matches["HEAD:notes.txt"])
	})

	t.Run("no matches is an empty result", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		matches, err := newClient(scene).Grep(context.Background(), "zzz-not-there", git.GrepOptions{})
		require.NoError(t, err)
		require.Empty(t, matches)
	})
}

func TestIndexOperations(t *testing.T) {
	t.Run("add commit and list files", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.WriteFile("dir/file one.txt", "content"))
		require.NoError(t, client.Add(ctx, nil, git.AddOptions{}))

		out, err := client.Commit(ctx, "add file", git.CommitOptions{})
		require.NoError(t, err)
		require.Contains(t, out, "add file")

		entries, err := client.LsFiles(ctx, "")
		require.NoError(t, err)
		require.Contains(t, entries, "dir/file one.txt")
		require.Equal(t, "0", entries["dir/file one.txt"].Stage)

		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"add file"})
	})

	t.Run("remove and move", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, client.Mv(ctx, "1_test.txt", "moved.txt"))
		entries, err := client.LsFiles(ctx, "")
		require.NoError(t, err)
		require.Contains(t, entries, "moved.txt")
		require.NotContains(t, entries, "1_test.txt")

		require.NoError(t, client.Remove(ctx, []string{"moved.txt"}, git.RemoveOptions{}))
		entries, err = client.LsFiles(ctx, "")
		require.NoError(t, err)
		require.Empty(t, entries)
		_, err = os.Stat(filepath.Join(scene.Dir, "moved.txt"))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("reset hard discards changes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)

		require.NoError(t, scene.Repo.CreateChange("changed", "1", false))
		require.NoError(t, client.Reset(context.Background(), "", git.ResetOptions{Hard: true}))

		content, err := os.ReadFile(filepath.Join(scene.Dir, "1_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "1", string(content))
	})

	t.Run("untracked ignored and clean", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.WriteFile(".gitignore", "*.log\n"))
		require.NoError(t, scene.Repo.WriteFile("debug.log", "noise"))
		require.NoError(t, scene.Repo.WriteFile("new.txt", "new"))

		untracked, err := client.UntrackedFiles(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{".gitignore", "new.txt"}, untracked)

		ignored, err := client.IgnoredFiles(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"debug.log"}, ignored)

		require.NoError(t, scene.Repo.RunGitCommand("add", ".gitignore"))
		require.NoError(t, scene.Repo.RunGitCommand("commit", "-m", "ignore logs"))

		require.NoError(t, client.Clean(ctx, git.CleanOptions{Force: true}))
		_, err = os.Stat(filepath.Join(scene.Dir, "new.txt"))
		require.True(t, os.IsNotExist(err))
		untracked, err = client.UntrackedFiles(ctx)
		require.NoError(t, err)
		require.Empty(t, untracked)
		_, err = os.Stat(filepath.Join(scene.Dir, "debug.log"))
		require.NoError(t, err, "ignored files survive a plain clean")
	})

	t.Run("revert undoes a commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "1"))

		require.NoError(t, newClient(scene).Revert(context.Background(), "HEAD"))

		content, err := os.ReadFile(filepath.Join(scene.Dir, "1_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "1", string(content))
	})

	t.Run("apply a diff", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.CreateChange("patched\n", "1", true))
		patch, err := client.DiffFull(ctx, "", "", git.DiffOptions{})
		require.NoError(t, err)
		require.NoError(t, client.Reset(ctx, "", git.ResetOptions{Hard: true}))

		patchFile := filepath.Join(t.TempDir(), "change.patch")
		require.NoError(t, os.WriteFile(patchFile, []byte(patch+"\n"), 0600))
		require.NoError(t, client.Apply(ctx, patchFile))

		content, err := os.ReadFile(filepath.Join(scene.Dir, "1_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "patched\n", string(content))
	})

	t.Run("apply a mailbox", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("mailed", "m"))
		mail, err := scene.Repo.RunGitCommandAndGetOutput("format-patch", "-1", "--stdout")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.RunGitCommand("reset", "--hard", "HEAD~1"))

		mailFile := filepath.Join(t.TempDir(), "0001.patch")
		require.NoError(t, os.WriteFile(mailFile, []byte(mail+"\n"), 0600))
		require.NoError(t, newClient(scene).ApplyMail(context.Background(), mailFile))

		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"mailed", "1"})
	})
}

func TestDiffOperations(t *testing.T) {
	t.Run("stats and raw diffs", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.CreateChange("1\n2\n3\n", "1", true))

		stats, err := client.DiffStats(ctx, "HEAD", "", git.DiffOptions{})
		require.NoError(t, err)
		require.Equal(t, 1, stats.Total.Files)
		require.Contains(t, stats.Files, "1_test.txt")
		require.Equal(t, stats.Total.Insertions+stats.Total.Deletions, stats.Total.Lines)

		files, err := client.DiffFiles(ctx)
		require.NoError(t, err)
		require.Equal(t, "M", files["1_test.txt"].Type)

		index, err := client.DiffIndex(ctx, "HEAD")
		require.NoError(t, err)
		require.Equal(t, "M", index["1_test.txt"].Type)
		require.Equal(t, "100644", index["1_test.txt"].ModeRepo)

		full, err := client.DiffFull(ctx, "", "", git.DiffOptions{PathLimiter: "1_test.txt"})
		require.NoError(t, err)
		require.Contains(t, full, "+3")
	})

	t.Run("no changes yields empty results", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)

		stats, err := client.DiffStats(context.Background(), "HEAD", "", git.DiffOptions{})
		require.NoError(t, err)
		require.Zero(t, stats.Total.Files)

		unmerged, err := client.Unmerged(context.Background())
		require.NoError(t, err)
		require.Empty(t, unmerged)
	})

	t.Run("conflicts expose both sides", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateConflict("other", "conflict.txt", "ours\n", "theirs\n"))
		client := newClient(scene)

		unmerged, err := client.Unmerged(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"conflict.txt"}, unmerged)

		var seen []string
		var tempFiles []string
		err = client.Conflicts(context.Background(), func(path, ours, theirs string) error {
			seen = append(seen, path)
			tempFiles = append(tempFiles, ours, theirs)

			oursContent, err := os.ReadFile(ours)
			if err != nil {
				return err
			}
			theirsContent, err := os.ReadFile(theirs)
			if err != nil {
				return err
			}
			require.Equal(t, "ours\n", string(oursContent))
			require.Equal(t, "theirs\n", string(theirsContent))
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []string{"conflict.txt"}, seen)

		for _, f := range tempFiles {
			_, err := os.Stat(f)
			require.True(t, os.IsNotExist(err), "temp file %s should be removed", f)
		}
	})

	t.Run("conflict callback errors propagate", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateConflict("other", "conflict.txt", "ours\n", "theirs\n"))
		boom := errors.New("boom")

		err := newClient(scene).Conflicts(context.Background(), func(string, string, string) error {
			return boom
		})
		require.ErrorIs(t, err, boom)
	})
}

func TestBranchOperations(t *testing.T) {
	t.Run("create list and delete", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, client.BranchNew(ctx, "feature"))
		testhelpers.ExpectBranches(t, scene.Repo, []string{"main", "feature"})

		branches, err := client.Branches(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []git.Branch{{Name: "main", Current: true}, {Name: "feature"}}, branches)

		require.NoError(t, client.BranchDelete(ctx, "feature"))
		testhelpers.ExpectBranches(t, scene.Repo, []string{"main"})
	})

	t.Run("checkout and current branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, client.Checkout(ctx, "", git.CheckoutOptions{NewBranch: "topic"}))
		current, err := client.CurrentBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "topic", current)

		require.NoError(t, client.Checkout(ctx, "main", git.CheckoutOptions{}))
		current, err = client.CurrentBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "main", current)

		err = client.Checkout(ctx, "main", git.CheckoutOptions{NewBranch: "topic"})
		require.ErrorIs(t, err, gitexecerrors.ErrExecution)
		require.Contains(t, err.Error(), "failed to checkout topic:")
	})

	t.Run("detached head has no current branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.RunGitCommand("checkout", "--detach", "HEAD"))

		current, err := newClient(scene).CurrentBranch(context.Background())
		require.NoError(t, err)
		require.Empty(t, current)
	})

	t.Run("checkout file restores content", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChange("dirty", "1", true))

		require.NoError(t, newClient(scene).CheckoutFile(context.Background(), "", "1_test.txt"))
		content, err := os.ReadFile(filepath.Join(scene.Dir, "1_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "1", string(content))
	})

	t.Run("change head branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("other"))

		require.NoError(t, newClient(scene).ChangeHeadBranch(context.Background(), "other"))
		require.Equal(t, "other", testhelpers.Must(scene.Repo.CurrentBranchName()))
	})

	t.Run("merge and merge base", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		base := testhelpers.Must(scene.Repo.GetRevision("HEAD"))
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("feature work", "f"))
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		client := newClient(scene)
		ctx := context.Background()

		bases, err := client.MergeBase(ctx, []string{"main", "feature"}, git.MergeBaseOptions{})
		require.NoError(t, err)
		require.Equal(t, []string{base}, bases)

		_, err = client.Merge(ctx, []string{"feature"}, git.MergeOptions{NoFF: true, Message: "merge feature"})
		require.NoError(t, err)

		merge, err := client.CommitData(ctx, "HEAD")
		require.NoError(t, err)
		require.Equal(t, "merge feature\n", merge.Message)
		require.Equal(t, []string{base, testhelpers.Must(scene.Repo.GetRevision("feature"))}, merge.Parents)
	})

	t.Run("merge base of unrelated histories is empty", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.RunGitCommand("checkout", "--orphan", "island"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("island", "i"))

		bases, err := newClient(scene).MergeBase(context.Background(), []string{"main", "island"}, git.MergeBaseOptions{})
		require.NoError(t, err)
		require.Empty(t, bases)
	})
}

func TestStashOperations(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	client := newClient(scene)
	ctx := context.Background()

	saved, err := client.StashSave(ctx, "nothing")
	require.NoError(t, err)
	require.False(t, saved)

	require.NoError(t, scene.Repo.CreateChange("wip", "1", true))
	saved, err = client.StashSave(ctx, "work in progress")
	require.NoError(t, err)
	require.True(t, saved)

	stashes, err := client.Stashes(ctx)
	require.NoError(t, err)
	require.Len(t, stashes, 1)
	require.Equal(t, 0, stashes[0].Index)
	require.Contains(t, stashes[0].Message, "work in progress")

	require.NoError(t, client.StashApply(ctx, ""))
	content, err := os.ReadFile(filepath.Join(scene.Dir, "1_test.txt"))
	require.NoError(t, err)
	require.Equal(t, "wip", string(content))

	require.NoError(t, client.StashClear(ctx))
	stashes, err = client.Stashes(ctx)
	require.NoError(t, err)
	require.Empty(t, stashes)
}

func TestRemoteOperations(t *testing.T) {
	t.Run("add inspect and remove remotes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()
		target := t.TempDir()

		require.NoError(t, client.RemoteAdd(ctx, "upstream", target, git.RemoteAddOptions{}))
		remotes, err := client.Remotes(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"upstream"}, remotes)

		cfg, err := client.ConfigRemote(ctx, "upstream")
		require.NoError(t, err)
		require.Equal(t, target, cfg["url"])
		require.Equal(t, "+refs/heads/*:refs/remotes/upstream/*", cfg["fetch"])

		require.NoError(t, client.RemoteRemove(ctx, "upstream"))
		remotes, err = client.Remotes(ctx)
		require.NoError(t, err)
		require.Empty(t, remotes)
	})

	t.Run("tags", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		err := client.Tag(ctx, "v0", git.TagOptions{Annotate: true})
		require.Error(t, err)

		require.NoError(t, client.Tag(ctx, "light", git.TagOptions{}))
		require.NoError(t, client.Tag(ctx, "v1.0", git.TagOptions{Annotate: true, Message: "release"}))

		tags, err := client.Tags(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"light", "v1.0"}, tags)

		tag, err := client.TagData(ctx, "v1.0")
		require.NoError(t, err)
		require.Equal(t, "commit", tag.Type)
		require.Equal(t, testhelpers.Must(scene.Repo.GetRevision("HEAD")), tag.Object)
		require.Equal(t, "release\n", tag.Message)

		require.NoError(t, client.Tag(ctx, "v2.0", git.TagOptions{Annotate: true, Message: "Release\n\n    code block"}))
		tag, err = client.TagData(ctx, "v2.0")
		require.NoError(t, err)
		require.Equal(t, "Release\n\n    code block\n", tag.Message)

		sha, err := client.TagSHA(ctx, "light")
		require.NoError(t, err)
		require.Equal(t, testhelpers.Must(scene.Repo.GetRevision("HEAD")), sha)

		missing, err := client.TagSHA(ctx, "nope")
		require.NoError(t, err)
		require.Empty(t, missing)

		require.NoError(t, client.Tag(ctx, "light", git.TagOptions{Delete: true}))
		tags, err = client.Tags(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"v1.0", "v2.0"}, tags)
	})

	t.Run("push fetch and pull", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()
		require.NoError(t, client.GlobalConfigSet(ctx, "user.name", "Global User"))
		require.NoError(t, client.GlobalConfigSet(ctx, "user.email", "global@example.com"))

		bare, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, client.Tag(ctx, "v1", git.TagOptions{}))
		require.NoError(t, client.Push(ctx, "origin", "main", git.PushOptions{Tags: true}))

		remote := git.NewClient(git.Location{GitDir: bare})
		remoteHead, err := remote.RevParse(ctx, "main")
		require.NoError(t, err)
		require.Equal(t, testhelpers.Must(scene.Repo.GetRevision("HEAD")), remoteHead)
		remoteTags, err := remote.Tags(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"v1"}, remoteTags)

		// advance the remote from a second clone
		loc, err := client.Clone(ctx, bare, "other", git.CloneOptions{Path: t.TempDir(), Branch: "main"})
		require.NoError(t, err)
		other := client.At(loc)
		require.NoError(t, os.WriteFile(filepath.Join(loc.WorkTree, "remote.txt"), []byte("remote"), 0600))
		require.NoError(t, other.Add(ctx, []string{"remote.txt"}, git.AddOptions{}))
		_, err = other.Commit(ctx, "from clone", git.CommitOptions{})
		require.NoError(t, err)
		require.NoError(t, other.Push(ctx, "origin", "main", git.PushOptions{}))

		require.NoError(t, client.Fetch(ctx, "origin", git.FetchOptions{}))
		fetched, err := client.RevParse(ctx, "origin/main")
		require.NoError(t, err)
		require.Equal(t, testhelpers.Must(other.RevParse(ctx, "HEAD")), fetched)

		require.NoError(t, client.Pull(ctx, "origin", "main"))
		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"from clone", "1"})
	})
}

func TestConfigOperations(t *testing.T) {
	t.Run("repository config", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, client.ConfigSet(ctx, "gitexec.answer", "a=b"))
		value, err := client.ConfigGet(ctx, "gitexec.answer")
		require.NoError(t, err)
		require.Equal(t, "a=b", value)

		missing, err := client.ConfigGet(ctx, "gitexec.missing")
		require.NoError(t, err)
		require.Empty(t, missing)

		cfg, err := client.ConfigList(ctx)
		require.NoError(t, err)
		require.Equal(t, "a=b", cfg["gitexec.answer"])
		require.Equal(t, "Test User", cfg["user.name"])
	})

	t.Run("global config", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, client.GlobalConfigSet(ctx, "gitexec.scope", "global"))
		value, err := client.GlobalConfigGet(ctx, "gitexec.scope")
		require.NoError(t, err)
		require.Equal(t, "global", value)

		cfg, err := client.GlobalConfigList(ctx)
		require.NoError(t, err)
		require.Equal(t, git.ConfigMap{"gitexec.scope": "global"}, cfg)

		stored, err := os.ReadFile(scene.GlobalConfig)
		require.NoError(t, err)
		require.Contains(t, string(stored), "scope = global")
	})

	t.Run("config file", func(t *testing.T) {
		_ = testhelpers.NewScene(t, nil)
		file := filepath.Join(t.TempDir(), "custom.ini")
		require.NoError(t, os.WriteFile(file, []byte("[core]\n\tbare = true\n[alias]\n\tst = status -s\n"), 0600))

		cfg, err := git.NewClient(git.Location{}).ParseConfigFile(context.Background(), file)
		require.NoError(t, err)
		require.Equal(t, git.ConfigMap{"core.bare": "true", "alias.st": "status -s"}, cfg)
	})
}

func TestPlumbingOperations(t *testing.T) {
	t.Run("write tree commit tree and update ref", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()
		head := testhelpers.Must(scene.Repo.GetRevision("HEAD"))

		tree, err := client.WriteTree(ctx)
		require.NoError(t, err)
		require.Equal(t, testhelpers.Must(scene.Repo.GetRevision("HEAD^{tree}")), tree)

		sha, err := client.CommitTree(ctx, tree, git.CommitTreeOptions{Parents: []string{head}})
		require.NoError(t, err)

		commit, err := client.CommitData(ctx, sha)
		require.NoError(t, err)
		require.Equal(t, "commit tree "+tree+"\n", commit.Message)
		require.Equal(t, []string{head}, commit.Parents)

		require.NoError(t, client.UpdateRef(ctx, "refs/heads/built", sha))
		built, err := client.RevParse(ctx, "built")
		require.NoError(t, err)
		require.Equal(t, sha, built)
	})

	t.Run("read tree with prefix and checkout index", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, client.ReadTree(ctx, "HEAD", "vendored/"))
		entries, err := client.LsFiles(ctx, "")
		require.NoError(t, err)
		require.Contains(t, entries, "vendored/1_test.txt")

		out := t.TempDir() + string(filepath.Separator)
		require.NoError(t, client.CheckoutIndex(ctx, git.CheckoutIndexOptions{Prefix: out, All: true}))
		content, err := os.ReadFile(filepath.Join(out, "vendored", "1_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "1", string(content))
	})

	t.Run("archives", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()
		dir := t.TempDir()

		zipFile, err := client.Archive(ctx, "HEAD", filepath.Join(dir, "out.zip"), git.ArchiveOptions{})
		require.NoError(t, err)
		zr, err := zip.OpenReader(zipFile)
		require.NoError(t, err)
		defer zr.Close()
		require.Len(t, zr.File, 1)
		require.Equal(t, "1_test.txt", zr.File[0].Name)

		tgzFile, err := client.Archive(ctx, "HEAD", filepath.Join(dir, "out.tgz"), git.ArchiveOptions{Format: git.ArchiveTgz, Prefix: "proj/"})
		require.NoError(t, err)
		f, err := os.Open(tgzFile)
		require.NoError(t, err)
		defer f.Close()
		gz, err := gzip.NewReader(f)
		require.NoError(t, err)
		names := []string{}
		tr := tar.NewReader(gz)
		for {
			hdr, err := tr.Next()
			if err != nil {
				break
			}
			if hdr.Typeflag == tar.TypeReg {
				names = append(names, hdr.Name)
			}
		}
		require.Equal(t, []string{"proj/1_test.txt"}, names)

		tmpFile, err := client.Archive(ctx, "HEAD", "", git.ArchiveOptions{Format: git.ArchiveTar})
		require.NoError(t, err)
		t.Cleanup(func() { os.Remove(tmpFile) })
		info, err := os.Stat(tmpFile)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	})

	t.Run("failed archive reports git output and removes its temp file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		tmpDir := t.TempDir()
		t.Setenv("TMPDIR", tmpDir)

		file, err := client.Archive(context.Background(), "no-such-ref", "", git.ArchiveOptions{})
		require.ErrorIs(t, err, gitexecerrors.ErrExecution)
		require.Empty(t, file)

		var execErr *gitexecerrors.ExecutionError
		require.ErrorAs(t, err, &execErr)
		require.Contains(t, execErr.Output, "no-such-ref")

		entries, err := os.ReadDir(tmpDir)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("maintenance", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		client := newClient(scene)
		ctx := context.Background()

		require.NoError(t, client.Repack(ctx))
		require.NoError(t, client.GC(ctx, git.GCOptions{Auto: true}))
	})
}

func TestVersion(t *testing.T) {
	client := git.NewClient(git.Location{})
	ctx := context.Background()

	v, err := client.Version(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, v.Major(), uint64(2))

	require.NoError(t, client.MeetsRequiredVersion(ctx, ""))

	err = client.MeetsRequiredVersion(ctx, "999.0.0")
	require.Error(t, err)
	require.True(t, errors.Is(err, gitexecerrors.ErrUnsupportedVersion))
}
