package jvm_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/jvm"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var checkersProject = map[string]string{
	"src/main/java/tga/checkers/service/CheckerService.java": `package tga.checkers.service;

import java.util.List;
import tga.checkers.web.CheckerController;

public class CheckerService {
    private CheckerController controller;
    private List<String> names;
}
`,
	"src/main/java/tga/checkers/web/CheckerController.java": `package tga.checkers.web;

import tga.checkers.service.*;

public class CheckerController {
    private final CheckerService service = new CheckerService();
}
`,
	"src/main/java/tga/checkers/repository/CheckerRepository.java": `package tga.checkers.repository;

public interface CheckerRepository {
}
`,
	"src/main/kotlin/tga/checkers/cache/Cache.kt": `package tga.checkers.cache

import tga.checkers.repository.CheckerRepository

class Cache(private val repo: CheckerRepository)
`,
	"src/main/kotlin/tga/checkers/cache/Helpers.kt": `package tga.checkers.cache

fun warm(cache: Cache) {
    println(cache)
}
`,
	"src/test/java/tga/checkers/service/CheckerServiceTest.java": `package tga.checkers.service;

import tga.checkers.repository.CheckerRepository;

public class CheckerServiceTest {
    private CheckerRepository repository;
}
`,
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
	return root
}

// newImporter returns an importer whose warnings are collected in the returned slice.
func newImporter(t *testing.T) (*jvm.Importer, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	var warnings []string
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		warnings = append(warnings, msg)
	}).AnyTimes()
	return jvm.NewImporter(fs.NewWalker(), log), &warnings
}

func edgeStrings(g *domain.Graph) []string {
	var out []string
	for e := range g.Edges() {
		out = append(out, e.String())
	}
	return out
}

func TestImporter_Import(t *testing.T) {
	root := writeProject(t, checkersProject)

	imp, _ := newImporter(t)
	g, err := imp.Import(context.Background(), domain.Source{
		Kind: domain.SourceJVM,
		Root: root,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"tga.checkers.cache",
		"tga.checkers.repository",
		"tga.checkers.service",
		"tga.checkers.web",
	}, g.Packages())

	edges := edgeStrings(g)
	assert.ElementsMatch(t, []string{
		"tga.checkers.cache.Cache -> tga.checkers.repository.CheckerRepository",
		"tga.checkers.cache.HelpersKt -> tga.checkers.cache.Cache",
		"tga.checkers.service.CheckerService -> java.util.List",
		"tga.checkers.service.CheckerService -> tga.checkers.web.CheckerController",
		"tga.checkers.web.CheckerController -> tga.checkers.service.CheckerService",
	}, edges)

	list, ok := g.Unit("java.util.List")
	require.True(t, ok)
	assert.True(t, list.External)
	assert.Equal(t, "java.util", list.Package.String())

	_, ok = g.Unit("tga.checkers.service.CheckerServiceTest")
	assert.False(t, ok)
}

func TestImporter_IncludeTests(t *testing.T) {
	root := writeProject(t, checkersProject)

	imp, _ := newImporter(t)
	g, err := imp.Import(context.Background(), domain.Source{
		Kind:         domain.SourceJVM,
		Root:         root,
		IncludeTests: true,
	})
	require.NoError(t, err)

	assert.Contains(t, edgeStrings(g),
		"tga.checkers.service.CheckerServiceTest -> tga.checkers.repository.CheckerRepository")
}

func TestImporter_PackagePrefix(t *testing.T) {
	root := writeProject(t, checkersProject)

	imp, _ := newImporter(t)
	g, err := imp.Import(context.Background(), domain.Source{
		Kind:     domain.SourceJVM,
		Root:     root,
		Packages: []string{"tga.checkers.service"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tga.checkers.service"}, g.Packages())
	controller, ok := g.Unit("tga.checkers.web.CheckerController")
	require.True(t, ok)
	assert.True(t, controller.External)
}

func TestImporter_BrokenHeader(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/main/java/a/Broken.java": "package a.b\n\npublic class Broken {}\n",
	})

	imp, _ := newImporter(t)
	_, err := imp.Import(context.Background(), domain.Source{
		Kind: domain.SourceJVM,
		Root: root,
	})
	require.ErrorIs(t, err, domain.ErrImportFailed)
	assert.Contains(t, err.Error(), "package or import declaration has syntax errors")
}

func TestImporter_SkipsBrokenBodies(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/main/java/a/A.java": `package a;

import b.Dep;

public class A {
    void m() {
        int x = ;
    }
}
`,
	})

	imp, warnings := newImporter(t)
	g, err := imp.Import(context.Background(), domain.Source{
		Kind: domain.SourceJVM,
		Root: root,
	})
	require.NoError(t, err)

	assert.Contains(t, edgeStrings(g), "a.A -> b.Dep")
	require.Len(t, *warnings, 1)
	assert.Contains(t, (*warnings)[0], filepath.Join("a", "A.java")+" at ")
}

func TestImporter_KotlinTypeUseAnnotation(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/main/kotlin/tga/checkers/web/rest/UserJWTController.kt": `package tga.checkers.web.rest

import org.springframework.web.bind.annotation.PostMapping
import org.springframework.web.bind.annotation.RequestBody
import org.springframework.web.bind.annotation.RestController
import tga.checkers.web.rest.vm.LoginVM
import javax.validation.Valid

@RestController
class UserJWTController(private val tokenProvider: TokenProvider) {

    @PostMapping("/authenticate")
    fun authorize(@RequestBody loginVM: @Valid LoginVM): JWTToken {
        return JWTToken(tokenProvider.createToken(loginVM.username))
    }
}
`,
		"src/main/kotlin/tga/checkers/web/rest/vm/LoginVM.kt": `package tga.checkers.web.rest.vm

class LoginVM(val username: String)
`,
	})

	imp, _ := newImporter(t)
	g, err := imp.Import(context.Background(), domain.Source{
		Kind:     domain.SourceJVM,
		Root:     root,
		Packages: []string{"tga.checkers"},
	})
	require.NoError(t, err)

	_, ok := g.Unit("tga.checkers.web.rest.UserJWTController")
	require.True(t, ok)
	assert.Contains(t, edgeStrings(g),
		"tga.checkers.web.rest.UserJWTController -> tga.checkers.web.rest.vm.LoginVM")
}

func TestImporter_QualifiedReferences(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/main/java/tga/checkers/web/W.java": `package tga.checkers.web;

public class W {
    public static W create() {
        return new W();
    }
}
`,
		"src/main/java/tga/checkers/service/S.java": `package tga.checkers.service;

public class S {
    private tga.checkers.web.W w;
}
`,
		"src/main/kotlin/tga/checkers/service/K.kt": `package tga.checkers.service

class K(val w: tga.checkers.web.W)
`,
		"src/main/kotlin/tga/checkers/service/Factory.kt": `package tga.checkers.service

fun make() = tga.checkers.web.W.create()
`,
	})

	imp, _ := newImporter(t)
	g, err := imp.Import(context.Background(), domain.Source{
		Kind: domain.SourceJVM,
		Root: root,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"tga.checkers.service.FactoryKt -> tga.checkers.web.W",
		"tga.checkers.service.K -> tga.checkers.web.W",
		"tga.checkers.service.S -> tga.checkers.web.W",
	}, edgeStrings(g))
}

func TestImporter_MissingRoot(t *testing.T) {
	imp, _ := newImporter(t)
	_, err := imp.Import(context.Background(), domain.Source{
		Kind: domain.SourceJVM,
		Root: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.ErrorIs(t, err, domain.ErrImportFailed)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestImporter_EmptyRoot(t *testing.T) {
	imp, _ := newImporter(t)
	g, err := imp.Import(context.Background(), domain.Source{
		Kind: domain.SourceJVM,
		Root: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Zero(t, g.UnitCount())
}
