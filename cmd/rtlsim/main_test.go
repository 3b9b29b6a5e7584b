// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_adder(t *testing.T) {
	out, err := execute(t, "run", "--design", "adder", "--width", "4", "--cycles", "4")
	require.NoError(t, err)
	require.Equal(t, "0: 0 + 0 = 0\n1: 3 + 5 = 8\n2: 6 + 10 = 0\n3: 9 + 15 = 8\n", out)
}

func TestRun_counter(t *testing.T) {
	out, err := execute(t, "run", "-d", "counter", "-w", "2", "-n", "5")
	require.NoError(t, err)
	require.Equal(t, "1: count=2'h1\n2: count=2'h2\n3: count=2'h3\n4: count=2'h0\n5: count=2'h1\n", out)
}

func TestRun_splitter(t *testing.T) {
	out, err := execute(t, "run", "-d", "splitter", "-w", "8", "-n", "1")
	require.NoError(t, err)
	require.Equal(t, "0: 8'hef => f e\n", out)

	_, err = execute(t, "run", "-d", "splitter", "-w", "6")
	require.Error(t, err)
}

func TestRun_metrics(t *testing.T) {
	out, err := execute(t, "run", "-d", "counter", "-n", "3", "--metrics")
	require.NoError(t, err)
	require.Contains(t, out, `rtlsim_cycles_total{design="counter"} 5`)
	require.Contains(t, out, `rtlsim_block_executions_total{design="counter",kind="seq"} 5`)
}

func TestRun_unknown(t *testing.T) {
	_, err := execute(t, "run", "-d", "cpu")
	require.Error(t, err)
	require.Contains(t, err.Error(), "adder, counter, splitter")
}

func TestOrder(t *testing.T) {
	out, err := execute(t, "order", "-d", "adder", "-w", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{
		"adder: 24 signals, 13 nets, 3 blocks",
		"   0 adder.adders[0].logic",
		"   1 adder.adders[1].logic",
		"   2 adder.adders[2].logic",
	}, lines)
}
