package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
)

const bashCompletionScript = `# bash completion for stockctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_stockctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "bq cq sync tq ui vq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    bq)
      local opts="$common --schema --ticker -T --from --to --limit -l --file --sv"
            ;;
        cq)
      local opts="--ticker -T --from --to --height --width --volume --color -c --file --sv --tldr"
            ;;
        sync)
            local opts="--force --check --file --tldr"
            ;;
        tq)
      local opts="$common --schema --file --sv"
            ;;
        ui)
            local opts="--color -c --volume --file --tldr"
            ;;
        vq)
      local opts="$common --schema --limit -l --file"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--file" ]]; then
        COMPREPLY=( $(compgen -o filenames -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _stockctl stockctl
`

const zshCompletionScript = `#compdef stockctl

_stockctl() {
  local -a cmds
  cmds=(
    'bq:bar query'
    'cq:candlestick chart query'
    'sync:refresh the local dataset copy'
    'tq:ticker query'
    'ui:interactive dashboard'
    'vq:dataset version query'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'stockctl commands' cmds
    return
  fi

  case $words[2] in
    bq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-T --ticker)'{-T,--ticker}'[ticker]' \
        '--from[first trading day]:date' \
        '--to[last trading day]:date' \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '--file[local dataset file]:file:_files' \
        '--sv[dataset version]'
      ;;
    cq)
      _arguments -C \
        '(-T --ticker)'{-T,--ticker}'[ticker]' \
        '--from[first trading day]:date' \
        '--to[last trading day]:date' \
        '--height[chart height]:rows' \
        '--width[max candles]:candles' \
        '--volume[volume lane]' \
        '(-c --color)'{-c,--color}'[color candles]' \
        '--file[local dataset file]:file:_files' \
        '--sv[dataset version]'
      ;;
    sync)
      _arguments -C \
        '--force[download even when current]' \
        '--check[report freshness only]' \
        '--file[local dataset file]:file:_files'
      ;;
    tq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--file[local dataset file]:file:_files' \
        '--sv[dataset version]'
      ;;
    ui)
      _arguments -C \
        '(-c --color)'{-c,--color}'[color candles]' \
        '--volume[volume lane]' \
        '--file[local dataset file]:file:_files'
      ;;
    vq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '--file[local dataset file]:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _stockctl stockctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: stockctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "stockctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
